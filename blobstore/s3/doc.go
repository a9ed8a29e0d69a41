// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("runs/2024/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	w, err := hepgo.NewWriter(ctx, "events.hepmc3.zst", hepgo.WithBlobStore(store))
//
// # Features
//
//   - Range reads for streaming event files without a full download
//   - Multipart uploads for large event files
//   - Automatic pagination for listing
//   - Configurable prefix for sharing a bucket between productions
package s3
