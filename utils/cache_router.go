package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	CacheNoCache = 0
	// CacheCustom leaves the cache-control header to the handler, e.g. blob
	// serving which sets its own long max-age
	CacheCustom = -1
)

// CacheRouter applies one cache-control policy to every route it wraps.
// Builder endpoints default to no-cache since album state changes with every
// drag.
type CacheRouter struct {
	CacheTime int // seconds; defaults to CacheNoCache
}

func (cr *CacheRouter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cr.CacheTime != CacheCustom {
			if cr.CacheTime == CacheNoCache {
				c.Header("cache-control", "no-cache")
			} else {
				c.Header("cache-control", "private, max-age="+strconv.Itoa(cr.CacheTime))
			}
		}
		c.Next()
	}
}
