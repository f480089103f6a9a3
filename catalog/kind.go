package catalog

import (
	"errors"
	"fmt"
)

// Kind enumerates the portfolio entity types the backend manages.
type Kind string

const (
	KindExperience    Kind = "experience"
	KindSkill         Kind = "skill"
	KindEducation     Kind = "education"
	KindProject       Kind = "project"
	KindCertification Kind = "certification"
)

// ErrUnknownKind reports an entity type outside the supported set.
var ErrUnknownKind = errors.New("catalog: unknown entity kind")

// Kinds returns every supported kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindExperience,
		KindSkill,
		KindEducation,
		KindProject,
		KindCertification,
	}
}

// ParseKind validates a raw kind token.
func ParseKind(raw string) (Kind, error) {
	k := Kind(raw)
	switch k {
	case KindExperience, KindSkill, KindEducation, KindProject, KindCertification:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
}

// Segment returns the API path segment addressing this kind.
func (k Kind) Segment() string {
	return string(k)
}

func (k Kind) String() string {
	return string(k)
}
