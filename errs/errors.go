package errs

import "github.com/napalu/shellcomp/i18n"

// Generation errors
var (
	ErrUnsupportedTarget       = i18n.NewError(ErrUnsupportedTargetKey)
	ErrMissingRuntimeTemplate  = i18n.NewError(ErrMissingRuntimeTemplateKey)
	ErrMalformedCandidateValue = i18n.NewError(ErrMalformedCandidateValueKey)
	ErrInvalidName             = i18n.NewError(ErrInvalidNameKey)
	ErrDuplicateName           = i18n.NewError(ErrDuplicateNameKey)
	ErrMultiplePrimary         = i18n.NewError(ErrMultiplePrimaryKey)
	ErrTreeTooDeep             = i18n.NewError(ErrTreeTooDeepKey)
	ErrInvalidScript           = i18n.NewError(ErrInvalidScriptKey)
	ErrWritingScript           = i18n.NewError(ErrWritingScriptKey)
	ErrNilTree                 = i18n.NewError(ErrNilTreeKey)
)

// Runtime errors
var (
	ErrUnknownSource        = i18n.NewError(ErrUnknownSourceKey)
	ErrUnknownParameter     = i18n.NewError(ErrUnknownParameterKey)
	ErrSourceFailed         = i18n.NewError(ErrSourceFailedKey)
	ErrInvalidCandidateSpec = i18n.NewError(ErrInvalidCandidateSpecKey)
	ErrInvalidHintKind      = i18n.NewError(ErrInvalidHintKindKey)
	ErrInvalidExec          = i18n.NewError(ErrInvalidExecKey)
	ErrMissingArgument      = i18n.NewError(ErrMissingArgumentKey)
	ErrSingleShell          = i18n.NewError(ErrSingleShellKey)
)

// Install errors
var (
	ErrNoScript           = i18n.NewError(ErrNoScriptKey)
	ErrCompletionPaths    = i18n.NewError(ErrCompletionPathsKey)
	ErrCreateDirectory    = i18n.NewError(ErrCreateDirectoryKey)
	ErrWriteCompletion    = i18n.NewError(ErrWriteCompletionKey)
	ErrSetPermissions     = i18n.NewError(ErrSetPermissionsKey)
	ErrUnsupportedInstall = i18n.NewError(ErrUnsupportedInstallKey)
)

// Manifest errors
var (
	ErrManifestRead    = i18n.NewError(ErrManifestReadKey)
	ErrManifestFormat  = i18n.NewError(ErrManifestFormatKey)
	ErrManifestDecode  = i18n.NewError(ErrManifestDecodeKey)
	ErrManifestInvalid = i18n.NewError(ErrManifestInvalidKey)
)
