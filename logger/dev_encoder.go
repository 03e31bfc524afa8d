package logger

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// devEncoder is a custom encoder for development mode that outputs colored,
// human-readable logs with indented JSON for complex objects.
type devEncoder struct {
	zapcore.Encoder
	consoleEncoder zapcore.Encoder
	jsonEncoder    zapcore.Encoder
	pool           buffer.Pool
}

// newDevEncoder creates a new development encoder with color support and JSON indentation.
func newDevEncoder(encoderConfig zapcore.EncoderConfig) zapcore.Encoder {
	consoleEnc := zapcore.NewConsoleEncoder(encoderConfig)
	return &devEncoder{
		Encoder:        consoleEnc, // embed the console encoder to implement the Encoder interface
		consoleEncoder: consoleEnc,
		jsonEncoder:    zapcore.NewJSONEncoder(encoderConfig),
		pool:           buffer.NewPool(),
	}
}

// EncodeEntry formats a log entry with colored levels and indented JSON fields.
func (e *devEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	consoleBuf, err := e.consoleEncoder.EncodeEntry(entry, nil)
	if err != nil {
		return nil, err
	}

	consoleOutput := strings.TrimRight(consoleBuf.String(), "\n")
	colorized := e.colorizeLevel(consoleOutput, entry.Level)

	if len(fields) > 0 {
		fieldBuf, encErr := e.jsonEncoder.EncodeEntry(entry, fields)
		if encErr != nil {
			return nil, encErr
		}

		var fieldsMap map[string]any
		err = json.Unmarshal(fieldBuf.Bytes(), &fieldsMap)
		if err != nil {
			// If we can't parse as JSON, just use the original fields
			colorized += " " + fieldBuf.String()
		} else {
			colorized = e.processFieldsMap(colorized, fieldsMap, fieldBuf)
		}
	}

	buf := e.pool.Get()
	buf.AppendString(colorized)
	buf.AppendString("\n")

	return buf, nil
}

// processFieldsMap handles the formatting of field maps for log entries.
func (e *devEncoder) processFieldsMap(colorized string, fieldsMap map[string]any, fieldBuf *buffer.Buffer) string {
	// These are already displayed in the log prefix.
	delete(fieldsMap, messageKey)
	delete(fieldsMap, levelKey)
	delete(fieldsMap, timeKey)
	delete(fieldsMap, callerKey)
	delete(fieldsMap, nameKey)

	if len(fieldsMap) > 0 {
		prettyJSON, marshalErr := json.MarshalIndent(fieldsMap, "", "  ")
		if marshalErr != nil {
			colorized += " " + fieldBuf.String()
		} else {
			colorized += "\n" + string(prettyJSON)
		}
	}

	return colorized
}

// colorizeLevel adds color to the log level based on its severity.
func (e *devEncoder) colorizeLevel(line string, level zapcore.Level) string {
	var colorFunc func(a ...any) string

	switch level {
	case zapcore.DebugLevel:
		colorFunc = color.New(color.FgCyan).SprintFunc()
	case zapcore.InfoLevel:
		colorFunc = color.New(color.FgGreen).SprintFunc()
	case zapcore.WarnLevel:
		colorFunc = color.New(color.FgYellow).SprintFunc()
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		colorFunc = color.New(color.FgRed, color.Bold).SprintFunc()
	case zapcore.InvalidLevel:
		colorFunc = color.New(color.FgMagenta).SprintFunc()
	default:
		colorFunc = func(a ...any) string {
			return fmt.Sprint(a...)
		}
	}

	capLevelStr := level.CapitalString()
	lowLevelStr := level.String()

	if strings.Contains(line, capLevelStr) {
		return strings.Replace(line, capLevelStr, colorFunc(capLevelStr), 1)
	} else if strings.Contains(line, lowLevelStr) {
		return strings.Replace(line, lowLevelStr, colorFunc(lowLevelStr), 1)
	}

	return line
}
