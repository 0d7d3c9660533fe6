package logging

import (
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/trackease/internal/metrics"
)

func LoggingWrapper(
	loggingName string,
	log *logrus.Logger,
	handler func(http.ResponseWriter, *http.Request, *LogData) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logData := NewLogData(log)
		log.Infof("Handler.%v.Start", loggingName)

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		endTimer := logData.AddTiming("duration")
		err := handler(rw, req.WithContext(WithLogData(req.Context(), logData)), logData)
		endTimer()
		handlerLabel := loggingName
		if route := logData.Route(); route != "" {
			handlerLabel = route
		}
		metrics.ObserveRequest(handlerLabel, req.Method, rw.status, time.Since(start))

		logData.AddData("status", rw.status)
		if err != nil {
			logData.Log().WithError(err).Errorf("Handler.%v.Error", loggingName)
			return
		}

		logData.Log().Infof("Handler.%v.Complete", loggingName)
	}
}

// Middleware wraps a whole mux, giving every request its own LogData.
// Responses with a recorded error or a 5xx status are logged at error level.
func Middleware(loggingName string, log *logrus.Logger, next http.Handler) http.Handler {
	return LoggingWrapper(loggingName, log, func(w http.ResponseWriter, req *http.Request, logData *LogData) error {
		logData.AddData("method", req.Method)
		logData.AddData("path", req.URL.Path)

		next.ServeHTTP(w, req)

		if err := logData.Err(); err != nil {
			return err
		}
		if rw, ok := w.(*statusRecorder); ok && rw.status >= http.StatusInternalServerError {
			return errServerStatus
		}
		return nil
	})
}

var errServerStatus = errors.New("server error status")

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
