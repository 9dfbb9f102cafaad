package sites

import (
	"io"

	"picklist/core/reconcile"
	"picklist/core/sheet"
)

// ReadSheet parses a site table file. Unreadable files are reported as
// *reconcile.InputReadError.
func ReadSheet(name string, r io.Reader, m reconcile.ColumnMap) ([]reconcile.SiteRecord, error) {
	t, err := sheet.Read(name, r)
	if err != nil {
		return nil, &reconcile.InputReadError{Channel: reconcile.ChannelSites, Err: err}
	}
	return reconcile.ParseSites(t, m)
}
