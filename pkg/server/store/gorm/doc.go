// Package gorm provides GORM-based implementations of the store interfaces
// defined in the parent store package.
//
// Every method runs against the request context. Operations that touch more
// than one table (signup, accepting an invitation or application, completing
// or deleting a project) run inside db.Transaction. Unique violations are
// translated to the store's conflict sentinels.
package gorm
