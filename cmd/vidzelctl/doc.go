// Command vidzelctl runs and administers the Vidzel collaboration server.
//
// Vidzel connects organizations with students, volunteers and mentors.
// Organizations publish projects, people apply or get invited, and accepted
// participants work together in a per-project workspace until the project
// is completed and certificates become available.
//
// # Quick Start
//
//	# Generate a token signing key
//	export VIDZEL_TOKEN_KEY="$(vidzelctl token-key generate)"
//
//	# Run database migrations
//	vidzelctl db migrate
//
//	# Load demo accounts and projects
//	vidzelctl seed load seed.yml
//
//	# Start the server
//	vidzelctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - VIDZEL_TOKEN_KEY: Base64-encoded HMAC key for session tokens
//   - VIDZEL_CONFIG_PATH: directory holding vidzel.yml (default /etc/vidzel)
//   - VIDZEL_LOG_LEVEL: Log level (debug, info, warn, error)
//   - AUDIT_DATABASE_URL: optional database for the audit trail
//   - PORT: Server port (default: 8000)
package main
