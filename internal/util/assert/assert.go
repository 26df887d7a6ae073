package assert

import (
	"fmt"
	"github.com/csr-ugra/rent-tracker/internal/log"
	"github.com/sirupsen/logrus"
	"os"
)

// data is a flat list of key/value pairs attached to the fatal log entry
func assert(msg string, data ...interface{}) {
	fields := make(logrus.Fields)
	for i := 0; i < len(data); i += 2 {
		if i+1 < len(data) {
			fields[fmt.Sprint(data[i])] = data[i+1]
			continue
		}

		fields[fmt.Sprint(data[i])] = ""
	}

	log.GetLogger().WithFields(fields).Fatal(msg)
	os.Exit(1)
}

func Assert(truth bool, msg string, data ...any) {
	if !truth {
		assert(msg, data...)
	}
}
