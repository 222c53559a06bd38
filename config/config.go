package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	TLS_DOMAINS  = "" // e.g. "example.com,example2.com"
	MYSQL_DSN    = "" // MySQL will be used if this is set
	SQLITE_FILE  = "gallery.db"
	BIND_ADDRESS = "0.0.0.0:8080"
	TMP_DIR      = "/tmp"
	DEBUG_MODE   = true
	// Base URL used when building shareable embed links, e.g. "https://gallery.example.com"
	EMBED_BASE_URL = "http://localhost:8080"
	// Longest edge of an uploaded image after re-encoding
	MAX_IMAGE_SIZE = 1600
	// Number of images fetched per album for the owner's album list previews
	PREVIEW_COUNT = 5
	// Local blob storage directory. Used when S3_BUCKET is not configured
	DATA_DIR = "data"
	// S3-compatible blob storage. All four must be set to enable it
	S3_BUCKET     = ""
	S3_REGION     = ""
	S3_ACCESS_KEY = ""
	S3_SECRET_KEY = ""
	S3_ENDPOINT   = "" // optional, for non-AWS S3 services
)

func init() {
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TMP_DIR", &TMP_DIR)
	readEnvString("EMBED_BASE_URL", &EMBED_BASE_URL)
	readEnvString("DATA_DIR", &DATA_DIR)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ACCESS_KEY", &S3_ACCESS_KEY)
	readEnvString("S3_SECRET_KEY", &S3_SECRET_KEY)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvInt("MAX_IMAGE_SIZE", &MAX_IMAGE_SIZE)
	readEnvInt("PREVIEW_COUNT", &PREVIEW_COUNT)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
