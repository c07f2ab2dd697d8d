package log

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"gopkg.in/Sirupsen/logrus.v0"
)

const maxZFields = 16

// EntryZ is a log entry built field by field and written by End. A nil
// *EntryZ is valid and does nothing, which is what disabled levels return:
//
//	log.ModVideo.DebugZ("obj palette").Uint8("idx", i).Hex16("color", c).End()
type EntryZ struct {
	lvl   Level
	mod   Module
	msg   string
	zfbuf [maxZFields]ZField
	zfidx int
}

var entryPool = sync.Pool{
	New: func() any { return new(EntryZ) },
}

func NewEntryZ() *EntryZ {
	e := entryPool.Get().(*EntryZ)
	e.zfidx = 0
	return e
}

// LogContextAdder adds contextual fields (e.g. the current frame) to every
// entry being written.
type LogContextAdder interface {
	AddLogContext(z *EntryZ)
}

var (
	ctxmu    sync.RWMutex
	contexts []LogContextAdder
)

// AddContext registers c, until RemoveContext is called.
func AddContext(c LogContextAdder) {
	ctxmu.Lock()
	contexts = append(contexts, c)
	ctxmu.Unlock()
}

func RemoveContext(c LogContextAdder) {
	ctxmu.Lock()
	contexts = slices.DeleteFunc(contexts, func(o LogContextAdder) bool { return o == c })
	ctxmu.Unlock()
}

func addContexts(z *EntryZ) {
	ctxmu.RLock()
	for _, c := range contexts {
		c.AddLogContext(z)
	}
	ctxmu.RUnlock()
}

func (z *EntryZ) field(typ FieldType, key string) *ZField {
	if z.zfidx == maxZFields {
		return nil
	}
	f := &z.zfbuf[z.zfidx]
	z.zfidx++
	*f = ZField{Type: typ, Key: key}
	return f
}

func (z *EntryZ) String(key, val string) *EntryZ {
	if z != nil {
		if f := z.field(FieldTypeString, key); f != nil {
			f.String = val
		}
	}
	return z
}

func (z *EntryZ) Bool(key string, val bool) *EntryZ {
	if z != nil {
		if f := z.field(FieldTypeBool, key); f != nil {
			f.Boolean = val
		}
	}
	return z
}

func (z *EntryZ) Int(key string, val int) *EntryZ {
	if z != nil {
		if f := z.field(FieldTypeInt, key); f != nil {
			f.Integer = uint64(val)
		}
	}
	return z
}

func (z *EntryZ) Int64(key string, val int64) *EntryZ {
	if z != nil {
		if f := z.field(FieldTypeInt, key); f != nil {
			f.Integer = uint64(val)
		}
	}
	return z
}

func (z *EntryZ) Uint(key string, val uint) *EntryZ {
	if z != nil {
		if f := z.field(FieldTypeUint, key); f != nil {
			f.Integer = uint64(val)
		}
	}
	return z
}

func (z *EntryZ) Uint8(key string, val uint8) *EntryZ {
	return z.Uint(key, uint(val))
}

func (z *EntryZ) Hex8(key string, val uint8) *EntryZ {
	if z != nil {
		if f := z.field(FieldTypeHex8, key); f != nil {
			f.Integer = uint64(val)
		}
	}
	return z
}

func (z *EntryZ) Hex16(key string, val uint16) *EntryZ {
	if z != nil {
		if f := z.field(FieldTypeHex16, key); f != nil {
			f.Integer = uint64(val)
		}
	}
	return z
}

func (z *EntryZ) Hex32(key string, val uint32) *EntryZ {
	if z != nil {
		if f := z.field(FieldTypeHex32, key); f != nil {
			f.Integer = uint64(val)
		}
	}
	return z
}

func (z *EntryZ) Error(key string, err error) *EntryZ {
	if z != nil {
		if f := z.field(FieldTypeError, key); f != nil {
			f.Error = err
		}
	}
	return z
}

func (z *EntryZ) Duration(key string, d time.Duration) *EntryZ {
	if z != nil {
		if f := z.field(FieldTypeDuration, key); f != nil {
			f.Duration = d
		}
	}
	return z
}

func (z *EntryZ) Stringer(key string, s fmt.Stringer) *EntryZ {
	if z != nil {
		if f := z.field(FieldTypeStringer, key); f != nil {
			f.Interface = s
		}
	}
	return z
}

// End writes the entry and releases it. z must not be used afterwards.
func (z *EntryZ) End() {
	if z == nil {
		return
	}

	addContexts(z)
	fields := make(logrus.Fields, z.zfidx+1)
	fields["_mod"] = z.mod.String()
	for i := range z.zfbuf[:z.zfidx] {
		fields[z.zfbuf[i].Key] = z.zfbuf[i].Value()
	}
	entry := logrus.StandardLogger().WithFields(fields)
	lvl, msg := z.lvl, z.msg
	entryPool.Put(z)

	switch lvl {
	case DebugLevel:
		entry.Debug(msg)
	case InfoLevel:
		entry.Info(msg)
	case WarnLevel:
		entry.Warn(msg)
	case ErrorLevel:
		entry.Error(msg)
	case FatalLevel:
		entry.Fatal(msg)
	case PanicLevel:
		entry.Panic(msg)
	}
}
