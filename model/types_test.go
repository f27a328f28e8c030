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

package model_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmxml/model"
)

func TestDegreesAngle(t *testing.T) {
	assert.Equal(t, int32(450000000), model.Degrees(45.0).Angle().E7())
	assert.Equal(t, int32(-5114822), model.Degrees(-0.5114822).Angle().E7())
	assert.Equal(t, int32(1), model.Degrees(0.00000006).Angle().E7())
}

func TestDegreesParse(t *testing.T) {
	d, err := model.ParseDegrees("53.123450")
	require.NoError(t, err)
	assert.Equal(t, model.Degrees(53.12345), d)

	_, err = model.ParseDegrees("abc")
	assert.Error(t, err)
}

func TestDegreesString(t *testing.T) {
	assert.Equal(t, "53° 7' 24.42\"", model.Degrees(53.123450).String())
	assert.Equal(t, "-51° 30' 0.00\"", model.Degrees(-51.5).String())
}

func TestCheckCoordinate(t *testing.T) {
	test_cases := []struct {
		name     string
		lon      model.Degrees
		lat      model.Degrees
		expected error
	}{
		{"origin", 0, 0, nil},
		{"corner", -180, 90, nil},
		{"antimeridian", 180, -90, nil},
		{"lon east", 180.0000001, 0, model.ErrCoordinateRange},
		{"lon west", -181, 0, model.ErrCoordinateRange},
		{"lat north", 0, 90.5, model.ErrCoordinateRange},
		{"lat south", 0, -91, model.ErrCoordinateRange},
		{"swapped", 52.1, 120, model.ErrCoordinateRange},
		{"nan", model.Degrees(math.NaN()), 0, model.ErrCoordinateRange},
		{"inf", 0, model.Degrees(math.Inf(1)), model.ErrCoordinateRange},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			err := model.CheckCoordinate(tc.lon, tc.lat)
			if tc.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expected)
			}
		})
	}
}
