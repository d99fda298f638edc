package main

import (
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/FractalFuryan/dual-chain-geophase/commitment"
	"github.com/FractalFuryan/dual-chain-geophase/config"
	"github.com/FractalFuryan/dual-chain-geophase/crypto"
	"github.com/FractalFuryan/dual-chain-geophase/keyschedule"
	"github.com/FractalFuryan/dual-chain-geophase/pipeline"
)

// Request is the single JSON shape accepted on stdin; which fields
// matter depends on op.
type Request struct {
	Op string `json:"op"`

	MasterSecretHex string            `json:"master_secret_hex,omitempty"`
	PrevT           uint64            `json:"prev_t"`
	PrevHashHex     string            `json:"prev_hash_hex,omitempty"`
	StateFieldsHex  map[string]string `json:"state_fields_hex,omitempty"`
	PlaintextHex    string            `json:"plaintext_hex,omitempty"`
	NonceHex        string            `json:"nonce_hex,omitempty"`
	NSym            uint16            `json:"nsym,omitempty"`
	KDFMode         string            `json:"kdf_mode,omitempty"`
	FrameSize       int               `json:"frame_size,omitempty"`

	HeaderHex  string `json:"header_hex,omitempty"`
	CarrierHex string `json:"carrier_hex,omitempty"`

	KEKHex       string `json:"kek_hex,omitempty"`
	KeystorePath string `json:"keystore_path,omitempty"`

	StorePath string `json:"store_path,omitempty"`
}

// Response is the single JSON shape written to stdout for every op.
type Response struct {
	Ok  bool   `json:"ok"`
	Err string `json:"err,omitempty"`

	CarrierHex string `json:"carrier_hex,omitempty"`
	HeaderHex  string `json:"header_hex,omitempty"`
	NextT      uint64 `json:"next_t,omitempty"`
	NextHash   string `json:"next_hash_hex,omitempty"`
	WitnessHex string `json:"witness_hex,omitempty"`

	Accepted     bool   `json:"accepted,omitempty"`
	PlaintextHex string `json:"plaintext_hex,omitempty"`

	CanonicalHex string `json:"canonical_hex,omitempty"`
	KeystoreJSON string `json:"keystore_json,omitempty"`
}

func writeResp(w io.Writer, resp Response) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(resp)
}

func errResp(reason string) Response {
	return Response{Ok: false, Err: reason}
}

func parseKDFMode(s string) (keyschedule.Mode, error) {
	switch s {
	case "", "deterministic":
		return keyschedule.Deterministic, nil
	case "hkdf":
		return keyschedule.HKDFMode, nil
	default:
		return 0, errUnknownKDFMode
	}
}

func buildConfig(req Request) (config.Config, error) {
	cfg := config.Default()
	if req.NSym != 0 {
		cfg.NSym = req.NSym
	}
	if req.FrameSize != 0 {
		cfg.FrameSize = req.FrameSize
	}
	mode, err := parseKDFMode(req.KDFMode)
	if err != nil {
		return config.Config{}, err
	}
	cfg.KDFMode = mode
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func decodeHex32(s string) ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	if len(b) != 32 {
		return out, errBadHexLength
	}
	copy(out[:], b)
	return out, nil
}

func buildBlockContext(p crypto.Provider, req Request) (pipeline.BlockContext, error) {
	cfg, err := buildConfig(req)
	if err != nil {
		return pipeline.BlockContext{}, err
	}
	masterBytes, err := hex.DecodeString(req.MasterSecretHex)
	if err != nil || len(masterBytes) != 32 {
		return pipeline.BlockContext{}, errBadMasterSecret
	}
	var master [32]byte
	copy(master[:], masterBytes)

	prevHash, err := decodeHex32(req.PrevHashHex)
	if err != nil {
		return pipeline.BlockContext{}, errBadPrevHash
	}

	mode := pipeline.DerivedNonce
	if req.NonceHex != "" {
		mode = pipeline.RandomNonce
	}

	return pipeline.BlockContext{
		Prev:         commitment.ChainState{T: req.PrevT, Hash: prevHash},
		MasterSecret: master,
		Config:       cfg,
		NonceMode:    mode,
	}, nil
}

func stateFieldsBytes(in map[string]string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(in))
	for k, vHex := range in {
		v, err := hex.DecodeString(vHex)
		if err != nil {
			return nil, errBadStateField
		}
		out[k] = v
	}
	return out, nil
}

func handleEncode(p crypto.Provider, req Request) Response {
	ctx, err := buildBlockContext(p, req)
	if err != nil {
		return errResp(err.Error())
	}
	plaintext, err := hex.DecodeString(req.PlaintextHex)
	if err != nil {
		return errResp(errBadPlaintext.Error())
	}
	stateFields, err := stateFieldsBytes(req.StateFieldsHex)
	if err != nil {
		return errResp(err.Error())
	}

	var explicitNonce *[12]byte
	if req.NonceHex != "" {
		nb, err := hex.DecodeString(req.NonceHex)
		if err != nil || len(nb) != 12 {
			return errResp(errBadNonce.Error())
		}
		var n [12]byte
		copy(n[:], nb)
		explicitNonce = &n
	}

	res, err := pipeline.Encode(ctx, p, stateFields, plaintext, explicitNonce)
	if err != nil {
		return errResp(err.Error())
	}
	if err := journalBlock(req.StorePath, res.Next.T, res.Next.Hash, res.Carrier); err != nil {
		return errResp("journal: " + err.Error())
	}
	header := res.Header.Encode()
	return Response{
		Ok:         true,
		CarrierHex: hex.EncodeToString(res.Carrier),
		HeaderHex:  hex.EncodeToString(header[:]),
		NextT:      res.Next.T,
		NextHash:   hex.EncodeToString(res.Next.Hash[:]),
		WitnessHex: hex.EncodeToString(res.Witness[:]),
	}
}

func handleDecode(p crypto.Provider, req Request) Response {
	ctx, err := buildBlockContext(p, req)
	if err != nil {
		return errResp(err.Error())
	}
	headerBytes, err := hex.DecodeString(req.HeaderHex)
	if err != nil {
		return errResp(errBadHeader.Error())
	}
	header, err := decodePublicHeader(headerBytes)
	if err != nil {
		return errResp(err.Error())
	}
	carrier, err := hex.DecodeString(req.CarrierHex)
	if err != nil {
		return errResp(errBadCarrier.Error())
	}

	result, next, err := pipeline.Decode(ctx, p, header, carrier)
	if err != nil {
		return errResp(err.Error())
	}
	if result.Accepted() {
		if err := journalBlock(req.StorePath, header.T, next.Hash, carrier); err != nil {
			return errResp("journal: " + err.Error())
		}
	}
	resp := Response{
		Ok:       true,
		Accepted: result.Accepted(),
		NextT:    next.T,
		NextHash: hex.EncodeToString(next.Hash[:]),
	}
	if plaintext, ok := result.Plaintext(); ok {
		resp.PlaintextHex = hex.EncodeToString(plaintext)
	}
	return resp
}

func handleRequest(logger *slog.Logger, p crypto.Provider, req Request) Response {
	logger.Info("cli op", "op", req.Op)
	switch req.Op {
	case "encode":
		return handleEncode(p, req)
	case "decode":
		return handleDecode(p, req)
	case "canonicalize":
		return handleCanonicalize(req)
	case "keymgr_wrap":
		return handleKeymgrWrap(p, req)
	case "keymgr_unwrap":
		return handleKeymgrUnwrap(p, req)
	case "journal_tip":
		return handleJournalTip(req)
	default:
		return errResp("unknown op")
	}
}

// runFromStdin reads a single Request from r, dispatches it, and writes
// the Response to w. It is exercised directly by the binary's main and
// by tests that supply in-memory readers/writers.
func runFromStdin(logger *slog.Logger, p crypto.Provider, r io.Reader, w io.Writer) {
	var req Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		writeResp(w, errResp("bad request: "+err.Error()))
		return
	}
	writeResp(w, handleRequest(logger, p, req))
}
