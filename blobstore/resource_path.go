package blobstore

import "strings"

// ResourcePath maps a resource type and key to the path the bits-service serves it on. An empty key
// addresses the whole collection, e.g. "/buildpack_cache/entries/".
func ResourcePath(rt ResourceType, key string) string {
	return "/" + strings.TrimSuffix(rt.pathPrefix(), "/") + "/" + strings.TrimPrefix(key, "/")
}

func joinEndpoint(endpoint, path string) string {
	return strings.TrimSuffix(endpoint, "/") + path
}
