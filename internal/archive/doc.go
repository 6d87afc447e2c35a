// Package archive discovers downloadable files on an archive page.
//
// The package visits exactly one page; it does not follow links, paginate
// or recurse.
//
// # Link Discovery
//
//	disco := archive.NewDiscoverer(client, ".mp4")
//	links, err := disco.FindLinks(ctx, "http://x.test/videos")
//	if err != nil {
//	    fmt.Printf("Error accessing page: %v\n", err)
//	    return
//	}
//
// # Normalisation
//
// Each matching href is percent-decoded, percent-encoded again and resolved
// against the base URL with a trailing slash appended. Given
//
//	<a href="clip one.mp4">  <a href="notes.txt">
//
// on http://x.test/videos the result is
//
//	[]string{"http://x.test/videos/clip%20one.mp4"}
package archive
