package usecases

import "github.com/samirrijal/propertymap/internal/core/domain"

// FilterVisible returns the projects whose coordinates fall inside b, in
// their original order. Projects without coordinates never match.
func FilterVisible(projects []domain.Project, b domain.Bounds) []domain.Project {
	out := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		loc, ok := p.Location()
		if !ok {
			continue
		}
		if b.Contains(loc) {
			out = append(out, p)
		}
	}
	return out
}

// Geocoded returns the projects that can be placed on a map.
func Geocoded(projects []domain.Project) []domain.Project {
	out := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if _, ok := p.Location(); ok {
			out = append(out, p)
		}
	}
	return out
}

// sameIDs reports whether a and b hold the same project ids in the same order.
func sameIDs(a, b []domain.Project) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
