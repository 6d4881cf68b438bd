// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package nats

import (
	"errors"
	"regexp"
	"time"

	"github.com/tochemey/applier/address"
	"github.com/tochemey/applier/internal/validation"
)

var subjectToken = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)

// ErrInvalidLocality is returned when the locality cannot be used as a subject token.
var ErrInvalidLocality = errors.New("locality must be a single subject token")

// Config configures the NATS transport
type Config struct {
	// URL is the NATS server in the format nats://host:port
	URL string
	// SubjectPrefix namespaces the subjects parcels are published on
	SubjectPrefix string
	// Locality is the node the transport receives for
	Locality address.Locality
	// ConnectTimeout bounds one connection attempt
	ConnectTimeout time.Duration
	// MaxRetries is the number of connection attempts
	MaxRetries int
}

// Validate checks the configuration
func (x Config) Validate() error {
	return validation.New(validation.FailFast).
		Add(validation.Required("url", x.URL),
			validation.Required("subject_prefix", x.SubjectPrefix),
			validation.Required("locality", string(x.Locality)),
			validation.Matches(subjectToken, string(x.Locality), ErrInvalidLocality)).
		Assert(x.Locality != broadcastToken, "the [locality] %q is reserved", broadcastToken).
		Validate()
}
