// Package seed loads accounts, profiles and projects from YAML documents.
//
// Loads are idempotent: accounts match on email and projects on
// (organization, title), so the same file can be applied repeatedly.
//
//	accounts:
//	  - email: team@greenearth.org
//	    name: Green Earth
//	    role: organization
//	  - email: ada@example.org
//	    name: Ada Lovelace
//	    role: student
//	    profile:
//	      location: London
//	projects:
//	  - organization: team@greenearth.org
//	    title: River cleanup
//	    cause_areas: [Environment]
package seed
