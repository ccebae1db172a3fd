package femto

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"femtoamp/internal/models"
)

// ErrBadReply marks a reply that does not match the expected shape for
// the command sent. It indicates protocol desynchronization and must
// not be papered over with partially parsed fields.
var ErrBadReply = errors.New("malformed reply")

// statusBits is the number of leading characters consumed from a
// STATUS? reply; the controller may send more, the rest is ignored.
const statusBits = 6

var climatePattern = regexp.MustCompile(`T=([\d.]+);H=([\d.]+)`)

// ParseStatus decodes a STATUS? reply. The first three characters are
// the gain field with bit 0 least significant (i.e. "001" decodes to
// gain 4), the fourth is coupling (0=AC, 1=DC), the fifth is speed
// (0=High, 1=Low) and the sixth is overload. The snapshot timestamp is
// left for the caller to stamp.
func ParseStatus(reply string) (models.StatusSnapshot, error) {
	if len(reply) < statusBits {
		return models.StatusSnapshot{}, fmt.Errorf("%w: STATUS? reply %q shorter than %d bits", ErrBadReply, reply, statusBits)
	}
	var bits [statusBits]int
	for i := 0; i < statusBits; i++ {
		switch reply[i] {
		case '0':
			bits[i] = 0
		case '1':
			bits[i] = 1
		default:
			return models.StatusSnapshot{}, fmt.Errorf("%w: STATUS? reply %q has non-binary digit at position %d", ErrBadReply, reply, i)
		}
	}
	return models.StatusSnapshot{
		Gain:     bits[0] | bits[1]<<1 | bits[2]<<2,
		Coupling: models.CouplingMode(bits[3]),
		Speed:    models.SpeedMode(bits[4]),
		Overload: bits[5] == 1,
	}, nil
}

// ParseClimate decodes a TEMP? reply of the form "T=<float>;H=<float>"
// into temperature (°C) and humidity (%). There is no fallback value:
// a non-matching reply fails the whole read.
func ParseClimate(reply string) (models.ClimateSnapshot, error) {
	m := climatePattern.FindStringSubmatch(reply)
	if m == nil {
		return models.ClimateSnapshot{}, fmt.Errorf("%w: TEMP? reply %q does not match T=<float>;H=<float>", ErrBadReply, reply)
	}
	temp, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return models.ClimateSnapshot{}, fmt.Errorf("%w: temperature %q: %v", ErrBadReply, m[1], err)
	}
	hum, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return models.ClimateSnapshot{}, fmt.Errorf("%w: humidity %q: %v", ErrBadReply, m[2], err)
	}
	return models.ClimateSnapshot{TemperatureC: temp, HumidityPct: hum}, nil
}
