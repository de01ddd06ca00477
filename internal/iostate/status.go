package iostate

import (
	"fmt"
	"io"

	"github.com/huangsam/metricviz/schema"
)

// PrintStoreStatus prints store status information.
func PrintStoreStatus(w io.Writer, target string, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Store Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Target: %s\n", target)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Key: %s\n", status.Key)
	_, _ = fmt.Fprintf(w, "Key Present: %t\n", status.KeyPresent)
	if !status.KeyPresent {
		return
	}
	_, _ = fmt.Fprintf(w, "Value Size: %d bytes\n", status.SizeBytes)
	if status.Version > 0 {
		_, _ = fmt.Fprintf(w, "Version: %d\n", status.Version)
	}
	if !status.LastWriteTime.IsZero() {
		_, _ = fmt.Fprintf(w, "Last Write: %s\n", status.LastWriteTime.Format("2006-01-02 15:04:05"))
	}
}
