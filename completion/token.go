package completion

import (
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/napalu/shellcomp/candidate"
	"github.com/napalu/shellcomp/command"
	"github.com/napalu/shellcomp/errs"
)

// Candidate tokens understood by the runtime templates
const (
	TokenBool      = "bool"
	TokenDefault   = "default"
	TokenFile      = "file"
	TokenDirectory = "directory"
	TokenKeywords  = "keywords"
	TokenOnTheFly  = "onthefly"

	tokenSeparator = ":"
)

// keyword values travel inside a colon-separated token inside a double-quoted literal
const reservedKeywordChars = ":\"$`\\ \t\r\n"

// EncodeResult returns the candidate token of a resolved result:
//
//	onthefly:<source> | default | file | directory | keywords:<v1>:<v2>:...
//
// Unknown kinds encode as default. A keyword value which cannot be carried by the token
// yields ErrMalformedCandidateValue.
func EncodeResult(res candidate.Result) (string, error) {
	if res.IsOnTheFly() {
		return TokenOnTheFly + tokenSeparator + res.Source(), nil
	}

	switch res.Kind() {
	case candidate.KindDefault:
		return TokenDefault, nil
	case candidate.KindFile:
		return TokenFile, nil
	case candidate.KindDirectory:
		return TokenDirectory, nil
	case candidate.KindKeywords:
		values := lo.Map(res.Values(), func(v candidate.Value, _ int) string {
			return v.Value
		})
		for _, v := range values {
			if v == "" || strings.ContainsAny(v, reservedKeywordChars) {
				return "", errs.ErrMalformedCandidateValue.WithArgs(v)
			}
		}
		return strings.Join(append([]string{TokenKeywords}, values...), tokenSeparator), nil
	default:
		return TokenDefault, nil
	}
}

// tokenEncoder turns options and arguments into candidate tokens. Failures are confined
// to the item: it degrades to the default token and a warning is logged.
type tokenEncoder struct {
	resolver candidate.Resolver
	logger   *zap.Logger
}

func (e tokenEncoder) option(o *command.Option) string {
	if o.IsBool() {
		return TokenBool
	}

	res, err := e.resolver.ResolveOption(o)
	if err != nil {
		e.logger.Warn("candidate resolution failed, using default", zap.String("option", o.Name), zap.Error(err))
		return TokenDefault
	}
	if res.IsOnTheFly() && res.Source() == "" {
		res = candidate.OnTheFly(o.Name)
	}

	return e.encode(res, zap.String("option", o.Name))
}

func (e tokenEncoder) argument(a *command.Argument) string {
	res, err := e.resolver.ResolveArgument(a)
	if err != nil {
		e.logger.Warn("candidate resolution failed, using default", zap.String("argument", a.Name), zap.Error(err))
		return TokenDefault
	}
	if res.IsOnTheFly() && res.Source() == "" {
		res = candidate.OnTheFly(a.Name)
	}

	return e.encode(res, zap.String("argument", a.Name))
}

func (e tokenEncoder) encode(res candidate.Result, field zap.Field) string {
	token, err := EncodeResult(res)
	if err != nil {
		e.logger.Warn("candidate value cannot be encoded, using default", field, zap.Error(err))
		return TokenDefault
	}
	if res.IsOnTheFly() && !command.IsValidName(res.Source()) {
		e.logger.Warn("on-the-fly source name cannot be encoded, using default", field, zap.String("source", res.Source()))
		return TokenDefault
	}
	return token
}
