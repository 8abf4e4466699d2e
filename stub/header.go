package stub

import (
	_ "embed"
	"strings"
)

//go:embed header.pyi.tmpl
var headerTemplate string

// VersionPlaceholder is replaced with the host version in the header
const VersionPlaceholder = "{VERSION}"

// Header returns the stub preamble for the given host version
func Header(version string) string {
	return strings.ReplaceAll(headerTemplate, VersionPlaceholder, version)
}
