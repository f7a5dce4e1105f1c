package singleton

import (
	"reflect"

	"go.uber.org/zap"
)

var Logger = zap.NewNop()

// SetLogger replaces the logger used by cells that were not given one
// explicitly. It must be called before any singleton is touched; a nil
// logger disables logging.
func SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	Logger = log
}

type llogger struct {
	log *zap.SugaredLogger
}

func stdLogger(log *zap.Logger) *llogger {
	if log == nil {
		log = Logger
	}

	return &llogger{
		log: log.Sugar(),
	}
}

func (log *llogger) debug(msg string, name string, args ...interface{}) {
	log.log.Debugw(msg, append([]interface{}{"singleton", name}, args...)...)
}

func (log *llogger) warn(msg string, name string, args ...interface{}) {
	log.log.Warnw(msg, append([]interface{}{"singleton", name}, args...)...)
}

func typeName[T any]() string {
	var t = reflect.TypeOf((*T)(nil)).Elem()
	if name := t.Name(); name != "" {
		return name
	}

	return t.String()
}
