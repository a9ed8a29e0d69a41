// Package hepio reads and writes event streams.
//
// Three formats are supported:
//
//   - FormatAsciiV3: the HepMC3 Asciiv3 text listing (".hepmc", ".hepmc3")
//   - FormatJSON: newline-delimited Record documents (".jsonl", ".ndjson")
//   - FormatMsgpack: length-prefixed msgpack Records (".msgpack", ".mpk")
//
// Any of them may be wrapped in gzip (".gz"), zstd (".zst") or lz4
// (".lz4"). Open and Create derive both from the path unless overridden:
//
//	r, err := hepio.Open(ctx, "ttbar.hepmc3.zst")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	ev := event.New()
//	for {
//	    if err := r.Read(ev); err == io.EOF {
//	        break
//	    } else if err != nil {
//	        return err
//	    }
//	    // use ev
//	}
//
// Paths resolve against the local file system unless WithBlobStore names a
// remote store.
package hepio
