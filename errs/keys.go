// Package errs contains the translation keys and sentinel errors used throughout shellcomp.
package errs

// Prefix for all shellcomp translation keys
const (
	prefixKey = "shellcomp"
)

// Error prefixes
const (
	ErrorPrefixKey    = prefixKey + ".error"
	ManifestPrefixKey = ErrorPrefixKey + ".manifest"
)

// Generation errors
const (
	ErrUnsupportedTargetKey       = ErrorPrefixKey + ".unsupported_target"
	ErrMissingRuntimeTemplateKey  = ErrorPrefixKey + ".missing_runtime_template"
	ErrMalformedCandidateValueKey = ErrorPrefixKey + ".malformed_candidate_value"
	ErrInvalidNameKey             = ErrorPrefixKey + ".invalid_name"
	ErrDuplicateNameKey           = ErrorPrefixKey + ".duplicate_name"
	ErrMultiplePrimaryKey         = ErrorPrefixKey + ".multiple_primary"
	ErrTreeTooDeepKey             = ErrorPrefixKey + ".tree_too_deep"
	ErrInvalidScriptKey           = ErrorPrefixKey + ".invalid_script"
	ErrWritingScriptKey           = ErrorPrefixKey + ".writing_script"
	ErrNilTreeKey                 = ErrorPrefixKey + ".nil_tree"
)

// Runtime (on-the-fly) errors
const (
	ErrUnknownSourceKey        = ErrorPrefixKey + ".unknown_source"
	ErrUnknownParameterKey     = ErrorPrefixKey + ".unknown_parameter"
	ErrSourceFailedKey         = ErrorPrefixKey + ".source_failed"
	ErrInvalidCandidateSpecKey = ErrorPrefixKey + ".invalid_candidate_spec"
	ErrInvalidHintKindKey      = ErrorPrefixKey + ".invalid_hint_kind"
	ErrInvalidExecKey          = ErrorPrefixKey + ".invalid_exec"
	ErrMissingArgumentKey      = ErrorPrefixKey + ".missing_argument"
	ErrSingleShellKey          = ErrorPrefixKey + ".single_shell"
)

// Install errors
const (
	ErrNoScriptKey           = ErrorPrefixKey + ".no_script"
	ErrCompletionPathsKey    = ErrorPrefixKey + ".completion_paths"
	ErrCreateDirectoryKey    = ErrorPrefixKey + ".create_directory"
	ErrWriteCompletionKey    = ErrorPrefixKey + ".write_completion"
	ErrSetPermissionsKey     = ErrorPrefixKey + ".set_permissions"
	ErrUnsupportedInstallKey = ErrorPrefixKey + ".unsupported_install_shell"
)

// Manifest errors
const (
	ErrManifestReadKey    = ManifestPrefixKey + ".read"
	ErrManifestFormatKey  = ManifestPrefixKey + ".format"
	ErrManifestDecodeKey  = ManifestPrefixKey + ".decode"
	ErrManifestInvalidKey = ManifestPrefixKey + ".invalid"
)
