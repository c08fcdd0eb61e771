// Package gscp provides a high-level Go module for copying objects from
// Google Cloud Storage to a local directory tree. It wraps the Cloud Storage
// client to provide prefix-based object selection and bounded-concurrent
// downloads behind a small, testable API.
//
// Key features:
//   - Simple, zero-configuration usage with the default credential chain
//   - Progressive enhancement through functional options
//   - Exact-match or recursive prefix selection, with an optional
//     path-boundary matching mode
//   - Bounded worker pool for parallel downloads with per-object outcome
//     collection
//   - Race-safe creation of shared destination directories
//
// Example usage:
//
//	client, err := gscp.New(ctx)
//	if err != nil {
//	    return err
//	}
//
//	result, err := client.Copy(ctx, "gs://my-bucket/reports", "/tmp/out",
//	    gscp.WithRecursive(true),
//	    gscp.WithParallel(4),
//	)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("downloaded %d objects\n", result.Succeeded())
package gscp
