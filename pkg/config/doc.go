// Package config provides configuration management for the Vidzel server.
//
// Values start from built-in defaults, are overridden by the YAML file at
// $VIDZEL_CONFIG_PATH/vidzel.yml (default /etc/vidzel/vidzel.yml) and finally
// by VIDZEL_* environment variables. The source of every attribute is
// recorded so `vidzelctl configuration show` can report it.
//
// # Key Configuration Options
//
//   - VIDZEL_TOKEN_TTL: session token lifetime in seconds
//   - VIDZEL_BLOB_BACKEND: badger or s3
//   - VIDZEL_UPLOAD_MAX_BYTES: multipart upload limit
//   - VIDZEL_LOG_LEVEL: debug, info, warn or error
//
// Secrets are never read from the file: DATABASE_URL and VIDZEL_TOKEN_KEY
// come from the environment only.
package config
