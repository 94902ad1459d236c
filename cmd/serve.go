package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jsphweid/gscore2midi/constants"
	"github.com/jsphweid/gscore2midi/convert"
	"github.com/jsphweid/gscore2midi/logger"
	"github.com/jsphweid/gscore2midi/model"
	"github.com/jsphweid/gscore2midi/resolve"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

// scores bigger than this are refused
const maxBodyBytes = 8 << 20

var addr string

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", constants.GetAddr(), "listen address")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves conversions over HTTP",
	Long:  `Serves POST /convert, which takes a gscore document and answers with the midi file`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveOptions()
		if err != nil {
			return err
		}
		logger.Get().Info("listening", "addr", addr)
		return http.ListenAndServe(addr, NewRouter(opts))
	},
}

func NewRouter(opts resolve.Options) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/convert", HandleConvert(opts)).Methods("POST")
	return cors.Default().Handler(router)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func HandleConvert(opts resolve.Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var buf bytes.Buffer
		res, err := convert.Convert(body, &buf, opts)
		if err != nil {
			logger.Get().Warn("conversion failed", "err", err)
			status := http.StatusBadRequest
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			writeError(w, status, err)
			return
		}

		w.Header().Set("Content-Type", "audio/midi")
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.Header().Set("X-Midi-Tracks", strconv.Itoa(res.Tracks))
		w.Write(buf.Bytes())
	}
}
