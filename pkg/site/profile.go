package site

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed profiles/default.yaml
var defaultProfile embed.FS

// Profile is everything the page says about its owner. The page script's
// link and endpoint configuration is derived from it as well.
type Profile struct {
	Name         string            `yaml:"name" validate:"required"`
	Initials     string            `yaml:"initials" validate:"required,max=3"`
	Title        string            `yaml:"title" validate:"required"`
	Tagline      string            `yaml:"tagline"`
	Description  string            `yaml:"description" validate:"required"`
	Keywords     []string          `yaml:"keywords"`
	URL          string            `yaml:"url" validate:"required,url"`
	Email        string            `yaml:"email" validate:"omitempty,email"`
	Location     string            `yaml:"location"`
	Availability string            `yaml:"availability"`
	ThemeColor   string            `yaml:"theme_color" validate:"required,hexcolor"`
	Roles        []string          `yaml:"roles"`
	Bio          []string          `yaml:"bio"`
	Currently    []string          `yaml:"currently"`
	Social       map[string]string `yaml:"social" validate:"dive,keys,oneof=github linkedin twitter dribbble,endkeys,omitempty,url"`
	CalendlyURL  string            `yaml:"calendly_url" validate:"omitempty,url"`
	CV           map[string]string `yaml:"cv" validate:"dive,keys,oneof=en ar,endkeys,omitempty"`

	Stats        []Stat          `yaml:"stats" validate:"dive"`
	Skills       []SkillCategory `yaml:"skills" validate:"dive"`
	Projects     []Project       `yaml:"projects" validate:"dive"`
	Filters      []Option        `yaml:"project_filters" validate:"dive"`
	Process      []Step          `yaml:"process" validate:"dive"`
	Testimonials []Testimonial   `yaml:"testimonials" validate:"dive"`
	Posts        []Post          `yaml:"posts" validate:"dive"`

	Services  []Option `yaml:"services" validate:"min=1,dive"`
	Budgets   []Option `yaml:"budgets" validate:"min=1,dive"`
	Timelines []Option `yaml:"timelines" validate:"min=1,dive"`
}

type Stat struct {
	Value  int    `yaml:"value" validate:"gte=0"`
	Suffix string `yaml:"suffix"`
	Label  string `yaml:"label" validate:"required"`
}

type SkillCategory struct {
	Name   string  `yaml:"name" validate:"required"`
	Icon   string  `yaml:"icon"`
	Skills []Skill `yaml:"skills" validate:"dive"`
}

type Skill struct {
	Name  string `yaml:"name" validate:"required"`
	Level int    `yaml:"level" validate:"gte=0,lte=100"`
}

type Project struct {
	Title       string   `yaml:"title" validate:"required"`
	Category    string   `yaml:"category" validate:"required"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	LiveURL     string   `yaml:"live_url" validate:"omitempty,url"`
	SourceURL   string   `yaml:"source_url" validate:"omitempty,url"`
}

type Step struct {
	Title       string `yaml:"title" validate:"required"`
	Icon        string `yaml:"icon"`
	Description string `yaml:"description"`
}

type Testimonial struct {
	Quote  string `yaml:"quote" validate:"required"`
	Author string `yaml:"author" validate:"required"`
	Role   string `yaml:"role"`
	Rating int    `yaml:"rating" validate:"gte=1,lte=5"`
}

type Post struct {
	Title    string `yaml:"title" validate:"required"`
	Excerpt  string `yaml:"excerpt"`
	Date     string `yaml:"date"`
	ReadTime string `yaml:"read_time"`
	Tag      string `yaml:"tag"`
}

// Option is one choice of a select element on the quote form.
type Option struct {
	Value string `yaml:"value" validate:"required"`
	Label string `yaml:"label" validate:"required"`
}

// DefaultProfile returns the profile bundled with the binary.
func DefaultProfile() (*Profile, error) {
	data, err := defaultProfile.ReadFile("profiles/default.yaml")
	if err != nil {
		return nil, fmt.Errorf("error reading bundled profile: %w", err)
	}
	return ParseProfile(bytes.NewReader(data))
}

// LoadProfile reads a profile from path, or the bundled one when path is empty.
func LoadProfile(path string) (*Profile, error) {
	if path == "" {
		return DefaultProfile()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening profile: %w", err)
	}
	defer f.Close()

	p, err := ParseProfile(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParseProfile decodes and validates a YAML profile. Unknown keys are errors
// so typos do not silently drop content.
func ParseProfile(r io.Reader) (*Profile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Profile
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("profile is empty")
		}
		return nil, fmt.Errorf("error parsing profile: %w", err)
	}

	if err := validator.New().Struct(&p); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	return &p, nil
}

// SocialLink is a populated entry of Profile.Social.
type SocialLink struct {
	Platform string
	URL      string
}

var socialOrder = []string{"github", "linkedin", "twitter", "dribbble"}

// SocialLinks returns the configured social profiles in display order.
func (p *Profile) SocialLinks() []SocialLink {
	var out []SocialLink
	for _, platform := range socialOrder {
		if u := p.Social[platform]; u != "" {
			out = append(out, SocialLink{Platform: platform, URL: u})
		}
	}
	return out
}

// ProjectFilters returns the category buttons shown above the projects.
// Without configured filters there is one per distinct project category.
func (p *Profile) ProjectFilters() []Option {
	if len(p.Filters) > 0 {
		return p.Filters
	}
	seen := make(map[string]bool)
	var out []Option
	for _, pr := range p.Projects {
		category := strings.ToLower(pr.Category)
		if seen[category] {
			continue
		}
		seen[category] = true
		out = append(out, Option{Value: category, Label: pr.Category})
	}
	return out
}
