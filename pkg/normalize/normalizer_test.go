package normalize

import (
	"strings"
	"testing"

	"ai-roadmap-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func sampleCourse() *entity.Course {
	return &entity.Course{
		Id:          uuid.New(),
		Title:       "Intro to Go",
		Subtitle:    "From zero to goroutines",
		Description: "Learn the Go programming language.\n\nCovers concurrency.",
		Category:    "programming",
		Level:       "beginner",
	}
}

func TestCourseTextDeterministic(t *testing.T) {
	c := sampleCourse()

	first := CourseText(c)
	second := CourseText(c)

	assert.Equal(t, first, second, "identical entity state must produce byte-identical text")
	assert.NotEmpty(t, first)
}

func TestCourseTextCollapsesWhitespace(t *testing.T) {
	c := sampleCourse()
	c.Description = "  lots   of\n\n\twhitespace  "

	got := CourseText(c)

	assert.NotContains(t, got, "\n")
	assert.NotContains(t, got, "\t")
	assert.NotContains(t, got, "  ")
	assert.Contains(t, got, "lots of whitespace")
}

func TestCourseTextFieldOrder(t *testing.T) {
	c := sampleCourse()
	got := CourseText(c)

	title := "Course Title: Intro to Go"
	category := "Category: programming"

	assert.Contains(t, got, title)
	assert.Contains(t, got, category)
	// Title comes before category, category before description.
	assert.Less(t, indexOf(got, title), indexOf(got, category))
	assert.Less(t, indexOf(got, category), indexOf(got, "Learn the Go"))
}

func TestCourseTextChangesWithContent(t *testing.T) {
	a := sampleCourse()
	b := sampleCourse()
	b.Description = "Something else entirely"

	assert.NotEqual(t, CourseText(a), CourseText(b))
}

func TestRoadmapTextIncludesNodes(t *testing.T) {
	r := &entity.Roadmap{
		Id:          uuid.New(),
		Title:       "Become a Backend Engineer",
		Description: "A guided path",
		Category:    "programming",
		Level:       "intermediate",
		Nodes: []entity.RoadmapNode{
			{Id: "n1", Title: "Learn SQL", Description: "Joins and indexes", Order: 0},
			{Id: "n2", Title: "Learn Go", Description: "Build an API", Order: 1},
		},
	}

	got := RoadmapText(r)

	assert.Contains(t, got, "Learn SQL: Joins and indexes")
	assert.Contains(t, got, "Learn Go: Build an API")
	assert.Less(t, indexOf(got, "Learn SQL"), indexOf(got, "Learn Go"))
}

func TestVideoTextDeterministic(t *testing.T) {
	v := &entity.Video{
		Id:          uuid.New(),
		Title:       "Goroutines Explained",
		Description: "Channels and select",
		Category:    "programming",
		Level:       "intermediate",
	}

	assert.Equal(t, VideoText(v), VideoText(v))
}

func indexOf(s, sub string) int {
	return strings.Index(s, sub)
}
