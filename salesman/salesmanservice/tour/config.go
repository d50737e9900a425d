package tour

import (
	"context"
	"errors"
	"fmt"

	"github.com/radekwlsk/go-salesman/utils"
	"googlemaps.github.io/maps"
)

var ErrZeroResults = errors.New("no results found")

const (
	ModeGeo     = "geo"
	ModePlane   = "plane"
	ModeAddress = "address"
	ModeName    = "name"
)

var ModeOptions = []string{
	ModeGeo,
	ModePlane,
	ModeAddress,
	ModeName,
}

// RequiresMaps reports whether descriptions of the mode are resolved
// through the Google Maps API.
func RequiresMaps(mode string) bool {
	return mode == ModeAddress || mode == ModeName
}

type PointConfig struct {
	Label       string      `json:"label" yaml:"label"`
	Description interface{} `json:"description" yaml:"description"`
}

type Configuration struct {
	APIKey              string         `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
	Mode                string         `json:"mode,omitempty" yaml:"mode,omitempty"`
	Language            string         `json:"language,omitempty" yaml:"language,omitempty"`
	Metric              string         `json:"metric,omitempty" yaml:"metric,omitempty"`
	Dataset             string         `json:"dataset,omitempty" yaml:"dataset,omitempty"`
	Start               int            `json:"start,omitempty" yaml:"start,omitempty"`
	MultiStart          bool           `json:"multiStart,omitempty" yaml:"multiStart,omitempty"`
	IncludeTrace        bool           `json:"includeTrace,omitempty" yaml:"includeTrace,omitempty"`
	PointsConfiguration []*PointConfig `json:"points,omitempty" yaml:"points,omitempty"`
}

// Description resolves a point description to coordinates. Client is nil
// for modes that do not need the Maps API.
type Description interface {
	Coordinates(ctx context.Context, c *maps.Client, lang string) (Coordinates, error)
}

// NewDescription returns an empty description of the mode for decoding into.
func NewDescription(mode string) (Description, bool) {
	switch mode {
	case ModeGeo:
		return &GeoDescription{}, true
	case ModePlane:
		return &PlaneDescription{}, true
	case ModeAddress:
		return &AddressDescription{}, true
	case ModeName:
		return &NameDescription{}, true
	}
	return nil, false
}

type GeoDescription struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (gd *GeoDescription) Coordinates(context.Context, *maps.Client, string) (Coordinates, error) {
	return Coordinates{Lat: gd.Lat, Lng: gd.Lng}, nil
}

type PlaneDescription struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (pd *PlaneDescription) Coordinates(context.Context, *maps.Client, string) (Coordinates, error) {
	return Coordinates{Lat: pd.X, Lng: pd.Y}, nil
}

type AddressDescription struct {
	Name       string `json:"name"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

func (ad *AddressDescription) IsEmpty() bool {
	return ad.Name == "" && ad.Street == "" && ad.City == ""
}

func (ad *AddressDescription) toAddressString() (address string) {
	address = fmt.Sprintf(
		"%s, %s %s, %s%s",
		ad.Name,
		ad.Street,
		ad.Number,
		utils.IfThenElse(
			ad.PostalCode == "",
			ad.City,
			fmt.Sprintf("%s %s", ad.PostalCode, ad.City)),
		utils.IfThenElse(
			ad.Country == "",
			"",
			fmt.Sprintf(", %s", ad.Country)),
	)
	return
}

func (ad *AddressDescription) Coordinates(ctx context.Context, c *maps.Client, lang string) (Coordinates, error) {
	r := &maps.GeocodingRequest{
		Address:  ad.toAddressString(),
		Language: lang,
	}
	resp, err := c.Geocode(ctx, r)
	if err != nil {
		return Coordinates{}, err
	}
	if len(resp) == 0 {
		return Coordinates{}, ErrZeroResults
	}
	loc := resp[0].Geometry.Location
	return Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}

type NameDescription struct {
	Name string `json:"name"`
}

func (nd *NameDescription) Coordinates(ctx context.Context, c *maps.Client, lang string) (Coordinates, error) {
	r := &maps.TextSearchRequest{
		Query:    nd.Name,
		Language: lang,
	}
	resp, err := c.TextSearch(ctx, r)
	if err != nil {
		return Coordinates{}, err
	}
	if len(resp.Results) == 0 {
		return Coordinates{}, ErrZeroResults
	}
	loc := resp.Results[0].Geometry.Location
	return Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}
