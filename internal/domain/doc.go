// Package domain defines core data models, errors and interfaces shared
// across keylink. It contains plain types (wire/state) and contracts only.
package domain
