package format

import "fmt"

// CheckParseOptions rejects options the format cannot honor.
func CheckParseOptions(f Format, opts ParseOptions) error {
	if opts.StripComments && f != JSON {
		return fmt.Errorf("strip-comments is not supported for %s format", f)
	}
	return nil
}
