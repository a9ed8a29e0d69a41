// Package minio provides a BlobStore backed by the MinIO client.
//
// It works against MinIO and other S3-compatible services (Ceph, Garage,
// SeaweedFS) without pulling in the AWS SDK.
//
//	store, err := minio.Dial("localhost:9000", "minioadmin", "minioadmin", false, "events", "run42/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r, err := hepgo.NewReader(ctx, "sample.hepmc3.gz", hepgo.WithBlobStore(store))
package minio
