// Package config loads the configuration document of an invocation.
//
// A Loader turns a pattern (a local glob or a URL) into a parsed
// format.Document in three steps:
//   - the source.Locator finds at most one file or URL;
//   - the format.Registry picks the adapter from the file extension;
//   - the adapter parses the content.
//
// When no pattern is given, or an optional pattern matches nothing, Load
// returns an empty document. Errors from the locator and the adapters are
// returned unchanged so callers can classify them with errors.As:
//
//	res, err := loader.Load(ctx, "~/.config/my-cli/*.{toml,yaml}", false)
//	if err != nil {
//	    var nf *source.ConfigNotFoundError
//	    if errors.As(err, &nf) {
//	        ...
//	    }
//	}
package config
