package main

import (
	"flag"
	"net/http"

	logs "github.com/danmuck/smplog"

	"github.com/nolmscheid/ReadbackCorrect-sub001/cmd/internal/logcfg"
	"github.com/nolmscheid/ReadbackCorrect-sub001/src/avdata"
)

// Serves a built dataset directory over plain HTTP GET, which is all the
// update client needs. Point the updater's base URL at this process to
// exercise an update cycle against locally built data.
func main() {
	logs.Configure(logcfg.Load())

	addr := flag.String("addr", ":8080", "HTTP listen address")
	dir := flag.String("dir", "./out", "built dataset directory to serve")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /"+avdata.ManifestFileName, handleManifest(*dir))
	mux.HandleFunc("GET /{name}", handleDataset(*dir))

	logs.Infof("dataset server listening on %s (serving: %s)", *addr, *dir)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		logs.Fatal(err, "server exited")
	}
}
