package reference

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// ReadFASTA parses FASTA data and returns an in-memory Genome holding every
// sequence.  Sequence names are the stretch of characters excluding spaces
// immediately after '>'; any text after a space is ignored, so
// ">chr1 a viral sequence" becomes "chr1".  Bases are upper-cased.
func ReadFASTA(r io.Reader) (Genome, error) {
	seqs := make(map[string]string)
	var names []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1024*1024*256)
	var seqName string
	var seq strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if seq.Len() != 0 {
				if seqName == "" {
					return nil, errors.Errorf("reference: malformed FASTA data")
				}
				seqs[seqName] = strings.ToUpper(seq.String())
				names = append(names, seqName)
				seq.Reset()
			}
			seqName = strings.Split(line[1:], " ")[0]
		} else {
			seq.WriteString(line)
		}
	}
	if scanner.Err() != nil {
		return nil, errors.Wrap(scanner.Err(), "couldn't read FASTA data")
	}
	if seqName == "" {
		return nil, errors.Errorf("reference: malformed FASTA data")
	}
	seqs[seqName] = strings.ToUpper(seq.String())
	names = append(names, seqName)
	return &inMemory{seqs: seqs, names: names}, nil
}

// Open reads the FASTA file at path (plain or gzip-compressed, decided by
// the .gz suffix) into an in-memory Genome.
func Open(path string) (g Genome, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = e
		}
	}()
	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		var gz *gzip.Reader
		if gz, err = gzip.NewReader(f); err != nil {
			return nil, err
		}
		defer func() {
			if e := gz.Close(); e != nil && err == nil {
				err = e
			}
		}()
		r = gz
	}
	return ReadFASTA(r)
}
