package entities

// ManifestFileName is the manifest file every managed repository carries
// at its root.
const ManifestFileName = "pyproject.toml"

// Manifest is the structural view of one package manifest, read once and
// never written back wholesale: edits are applied as targeted text
// replacements so everything the rewrite does not touch stays
// byte-identical on disk.
type Manifest struct {
	Path string
	Name string

	// BuildRequires and Dependencies keep the raw requirement strings
	// exactly as they appear in the file.
	BuildRequires []string
	Dependencies  []string

	NativeLibs []NativeLib
}

// NativeLib is one declared native-library-download descriptor.
type NativeLib struct {
	Key     string // descriptor table key
	Version string
	RepoURL string
	Exempt  bool
}

// Requirement group labels, used in change output.
const (
	GroupBuildRequires = "build-system.requires"
	GroupDependencies  = "project.dependencies"
)

// ManifestEditKind discriminates ManifestEdit variants.
type ManifestEditKind int

const (
	// EditRequirement replaces a requirement string inside a list.
	EditRequirement ManifestEditKind = iota
	// EditLibField replaces a native-lib descriptor field value.
	EditLibField
)

// ManifestEdit is one targeted text replacement against the manifest's raw
// bytes.
type ManifestEdit struct {
	Kind ManifestEditKind

	// EditRequirement: Old/New are the quoted requirement bodies.
	Old string
	New string

	// EditLibField: descriptor key and field name ("version", "repo_url").
	LibKey string
	Field  string
}
