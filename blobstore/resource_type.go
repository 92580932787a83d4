package blobstore

import (
	"strings"

	"github.com/pkg/errors"
)

// ResourceType is the category of blob a client manages. It decides the path prefix on the bits-service and
// the multipart field name used for uploads.
type ResourceType string

const (
	Packages       ResourceType = "packages"
	Droplets       ResourceType = "droplets"
	Buildpacks     ResourceType = "buildpacks"
	BuildpackCache ResourceType = "buildpack_cache"
)

var singulars = map[ResourceType]string{
	Packages:       "package",
	Droplets:       "droplet",
	Buildpacks:     "buildpack",
	BuildpackCache: "buildpack_cache",
}

var resourceTypeAliases = map[string]ResourceType{
	"packages":                Packages,
	"package":                 Packages,
	"app_packages":            Packages,
	"droplets":                Droplets,
	"droplet":                 Droplets,
	"buildpacks":              Buildpacks,
	"buildpack":               Buildpacks,
	"buildpack_cache":         BuildpackCache,
	"buildpack_cache_entries": BuildpackCache,
}

func AllResourceTypes() []ResourceType {
	return []ResourceType{Packages, Droplets, Buildpacks, BuildpackCache}
}

// ParseResourceType resolves a resource type name or one of its aliases.
func ParseResourceType(s string) (ResourceType, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return "", ErrResourceTypeNotPresent
	}

	if rt, ok := resourceTypeAliases[s]; ok {
		return rt, nil
	}

	return "", errors.Wrapf(ErrConfiguration, "unknown resource type '%s'", s)
}

func (rt ResourceType) String() string {
	return string(rt)
}

func (rt ResourceType) IsValid() bool {
	_, ok := singulars[rt]
	return ok
}

// Singular is the field name the service expects for the uploaded file.
func (rt ResourceType) Singular() string {
	if s, ok := singulars[rt]; ok {
		return s
	}
	return string(rt)
}

// pathPrefix is the first part of the resource path. The buildpack cache is the only type whose blobs live
// under a sub-collection.
func (rt ResourceType) pathPrefix() string {
	if rt == BuildpackCache {
		return "buildpack_cache/entries/"
	}
	return string(rt)
}
