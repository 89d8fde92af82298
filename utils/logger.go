/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package utils

import (
	"io"
	"log"
	"os"
)

// Logger defines a minimum logger interface. This way the maximum flexibility in supported loggers can be offered.
// If your chosen logger does not implement one of the functions required by this interface, you can wrap it and
// append the missing exported function, redirecting to the original loggers suitable one.
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Warningf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

// TaggedLogger is a small wrapper for the Logger interface, that allows to add an additional tag before every message.
// It is used to group the messages of a single import or refresh run.
type TaggedLogger struct {
	Logger
	tag string
}

func NewTaggedLogger(logger Logger, tag string) *TaggedLogger {
	return &TaggedLogger{
		logger,
		tag,
	}
}
func (l *TaggedLogger) Debugf(format string, v ...interface{}) {
	l.Logger.Debugf("["+l.tag+"] "+format, v...)
}
func (l *TaggedLogger) Infof(format string, v ...interface{}) {
	l.Logger.Infof("["+l.tag+"] "+format, v...)
}
func (l *TaggedLogger) Warningf(format string, v ...interface{}) {
	l.Logger.Warningf("["+l.tag+"] "+format, v...)
}
func (l *TaggedLogger) Errorf(format string, v ...interface{}) {
	l.Logger.Errorf("["+l.tag+"] "+format, v...)
}

// StdLogger wraps the default golang logger with level prefixes. Debug messages are dropped unless enabled.
type StdLogger struct {
	*log.Logger
	debug bool
}

// NewStdLogger returns a level aware logger writing to the given output, stderr if nil.
func NewStdLogger(out io.Writer, debug bool) *StdLogger {
	if out == nil {
		out = os.Stderr
	}
	return &StdLogger{
		log.New(out, "", log.LstdFlags),
		debug,
	}
}

func (l *StdLogger) Debugf(format string, v ...interface{}) {
	if l.debug {
		l.Printf("DEBUG "+format, v...)
	}
}
func (l *StdLogger) Infof(format string, v ...interface{}) {
	l.Printf("INFO  "+format, v...)
}
func (l *StdLogger) Warningf(format string, v ...interface{}) {
	l.Printf("WARN  "+format, v...)
}
func (l *StdLogger) Errorf(format string, v ...interface{}) {
	l.Printf("ERROR "+format, v...)
}

// TestLogger wraps the default golang logger and extends it with the functions required to implement the
// Logger interface.
type TestLogger struct {
	*log.Logger
}

func (l *TestLogger) Debugf(format string, v ...interface{}) {
	l.Printf(format+"\n", v...)
}
func (l *TestLogger) Infof(format string, v ...interface{}) {
	l.Printf(format+"\n", v...)
}
func (l *TestLogger) Warningf(format string, v ...interface{}) {
	l.Printf(format+"\n", v...)
}
func (l *TestLogger) Errorf(format string, v ...interface{}) {
	l.Printf(format+"\n", v...)
}

// NewTestLogger returns a new standard golang logger compliant with the Logger interface
func NewTestLogger() *TestLogger {
	return &TestLogger{
		log.New(os.Stdout, "", log.LstdFlags),
	}
}
