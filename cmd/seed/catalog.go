package main

import (
	"io"
	"strings"

	"course-enrollment/internal/pkg/errs"
	"course-enrollment/internal/usecase/commands"

	"gopkg.in/yaml.v3"
)

type catalog struct {
	Admin   string         `yaml:"admin"`
	Classes []catalogClass `yaml:"classes"`
}

type catalogClass struct {
	Name            string `yaml:"name"`
	ImageURL        string `yaml:"imageUrl"`
	InstructorName  string `yaml:"instructorName"`
	InstructorEmail string `yaml:"instructorEmail"`
	PriceCents      int64  `yaml:"priceCents"`
	AvailableSeat   int    `yaml:"availableSeat"`
	Approved        bool   `yaml:"approved"`
}

func (c catalogClass) input() commands.CreateClassInput {
	return commands.CreateClassInput{
		Name:            c.Name,
		ImageURL:        c.ImageURL,
		InstructorName:  c.InstructorName,
		InstructorEmail: c.InstructorEmail,
		PriceCents:      c.PriceCents,
		AvailableSeat:   c.AvailableSeat,
	}
}

func decodeCatalog(r io.Reader) (catalog, error) {
	var cat catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil {
		return catalog{}, errs.Wrap(err, "decode seed catalog")
	}
	if strings.TrimSpace(cat.Admin) == "" {
		return catalog{}, errs.New("seed catalog needs an admin email")
	}
	for i, c := range cat.Classes {
		if strings.TrimSpace(c.Name) == "" {
			return catalog{}, errs.Newf("seed catalog class #%d has no name", i+1)
		}
	}
	return cat, nil
}
