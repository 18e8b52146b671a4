package driver

import "github.com/sirupsen/logrus"

var log = logrus.New()

// SetLogger overrides the package-level logger, matching the protocol
// packages' SetLogger hook.
func SetLogger(l *logrus.Logger) {
	log = l
}
