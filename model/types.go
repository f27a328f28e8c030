// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import (
	"fmt"
	"math"
	"strconv"

	"github.com/golang/geo/s1"
)

// Degrees is the decimal degree representation of a longitude or latitude.
type Degrees float64

// Angle represents a 1D angle in radians.
type Angle s1.Angle

// Degrees units.
const (
	MinutesPerDegree = 60
	SecondsPerDegree = 3600
)

// World spans every valid longitude and latitude.
var World = BoundingBox{Valid: true, MinLon: -180, MaxLon: 180, MinLat: -90, MaxLat: 90}

// Angle returns the equivalent s1.Angle.
func (d Degrees) Angle() Angle { return Angle(float64(d) * float64(s1.Degree)) }

// E7 returns the angle in the fixed point degrees*1e7 form OSM stores
// coordinates in.
func (a Angle) E7() int32 { return s1.Angle(a).E7() }

// String formats the degrees as degrees, minutes and seconds.
func (d Degrees) String() string {
	var sign string
	if d < 0 {
		sign = "-"
	}

	val := math.Abs(float64(d))
	degrees := int(math.Floor(val))
	minutes := int(math.Floor(MinutesPerDegree * (val - float64(degrees))))
	seconds := SecondsPerDegree * (val - float64(degrees) - (float64(minutes) / MinutesPerDegree))

	return fmt.Sprintf("%s%d° %d' %.2f\"", sign, degrees, minutes, seconds)
}

// ParseDegrees converts a string to a Degrees instance.
func ParseDegrees(s string) (Degrees, error) {
	u, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	return Degrees(u), nil
}

// CheckCoordinate returns ErrCoordinateRange unless lon and lat lie within
// World.  NaN is never within.
func CheckCoordinate(lon, lat Degrees) error {
	if !World.Contains(lon, lat) {
		return fmt.Errorf("%w: lon %g lat %g", ErrCoordinateRange, float64(lon), float64(lat))
	}

	return nil
}

// position is a coordinate pair quantized the way OSM stores it.  Two nodes
// with the same position are indistinguishable once uploaded.
type position struct {
	lon, lat int32
}

func positionOf(lon, lat Degrees) position {
	return position{lon: lon.Angle().E7(), lat: lat.Angle().E7()}
}
