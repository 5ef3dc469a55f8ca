package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/garagectl/garagectl/pkg/catalog"
)

// parseID parses a positional record id argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %q", arg)
	}
	return id, nil
}

// required returns a huh validator rejecting empty input.
func required(what string) func(string) error {
	return func(s string) error {
		if s == "" {
			return errors.New(what + " is required")
		}
		return nil
	}
}

func findSegment(segments []catalog.Segment, id int) (catalog.Segment, bool) {
	for _, s := range segments {
		if s.ID == id {
			return s, true
		}
	}
	return catalog.Segment{}, false
}

func findBrand(brands []catalog.Brand, id int) (catalog.Brand, bool) {
	for _, b := range brands {
		if b.ID == id {
			return b, true
		}
	}
	return catalog.Brand{}, false
}

func findVehicle(vehicles []catalog.Vehicle, id int) (catalog.Vehicle, bool) {
	for _, v := range vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return catalog.Vehicle{}, false
}
