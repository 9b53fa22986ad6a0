package normalize

import (
	"fmt"
	"strings"

	"ai-roadmap-be/internal/entity"
)

// The normalizer builds the single text blob an entity is embedded from.
// Field order is fixed and whitespace is collapsed so that identical entity
// state always produces a byte-identical string. The orchestrator relies on
// this to detect "content unchanged" and skip re-embedding.

func CourseText(c *entity.Course) string {
	return collapse(fmt.Sprintf(`Course Title: %s
Subtitle: %s
Category: %s
Level: %s

%s`,
		c.Title,
		c.Subtitle,
		c.Category,
		c.Level,
		c.Description,
	))
}

func VideoText(v *entity.Video) string {
	return collapse(fmt.Sprintf(`Video Title: %s
Subtitle: %s
Category: %s
Level: %s

%s`,
		v.Title,
		v.Subtitle,
		v.Category,
		v.Level,
		v.Description,
	))
}

func RoadmapText(r *entity.Roadmap) string {
	var nodes strings.Builder
	for _, n := range r.Nodes {
		nodes.WriteString(n.Title)
		nodes.WriteString(": ")
		nodes.WriteString(n.Description)
		nodes.WriteString("\n")
	}

	return collapse(fmt.Sprintf(`Roadmap Title: %s
Category: %s
Level: %s

%s

Steps:
%s`,
		r.Title,
		r.Category,
		r.Level,
		r.Description,
		nodes.String(),
	))
}

// collapse trims the string and squashes runs of whitespace into single
// spaces. strings.Fields is deterministic for any input.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
