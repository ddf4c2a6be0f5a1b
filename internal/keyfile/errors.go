package keyfile

import "github.com/etclabscore/jade-signer/internal/jadeerr"

func errMalformed(msg string) error {
	return jadeerr.New(jadeerr.KindKeyfileMalformed, msg)
}

func errMalformedWrap(msg string, cause error) error {
	return jadeerr.Wrap(jadeerr.KindKeyfileMalformed, msg, cause)
}
