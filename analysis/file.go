package analysis

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/setscan/constants"
	"github.com/jsphweid/setscan/model"
)

// Analysis file layout, little endian throughout:
//
//	uint32 index length
//	gob-encoded ScaleIndex (scale -> byte range in the data section)
//	data section: 8-byte records (uint32 start ms, uint16 set, uint16
//	class) grouped by scale, scales ascending

// WriteFile persists one analysis under a fresh uuid filename in dir
// and returns the filename.
func WriteFile(res Result, dir string) (string, error) {
	index := make(model.ScaleIndex)
	dataBuf := new(bytes.Buffer)
	dataOffset := uint32(0)

	for _, scale := range res.SortedScales() {
		recs := res.ByScale[scale]
		start := dataOffset
		for _, rec := range recs {
			binary.Write(dataBuf, binary.LittleEndian, rec.StartMs)
			binary.Write(dataBuf, binary.LittleEndian, rec.Set)
			binary.Write(dataBuf, binary.LittleEndian, rec.Class)
			dataOffset += constants.RecordSize
		}
		index[scale] = model.Pair{Start: start, End: dataOffset}
	}

	indexBuf := new(bytes.Buffer)
	encoder := gob.NewEncoder(indexBuf)
	if err := encoder.Encode(index); err != nil {
		return "", fmt.Errorf("couldn't encode analysis index: %w", err)
	}

	sizeBuf := new(bytes.Buffer)
	binary.Write(sizeBuf, binary.LittleEndian, uint32(indexBuf.Len()))

	var finalBytes []byte
	finalBytes = append(finalBytes, sizeBuf.Bytes()...)
	finalBytes = append(finalBytes, indexBuf.Bytes()...)
	finalBytes = append(finalBytes, dataBuf.Bytes()...)

	filename := uuid.New().String() + ".dat"
	if err := os.WriteFile(filepath.Join(dir, filename), finalBytes, 0777); err != nil {
		return "", fmt.Errorf("write failed for analysis file: %w", err)
	}
	return filename, nil
}

// ReadIndex reads the scale index off the front of an analysis file,
// leaving the reader positioned at the start of the data section. Also
// returns the encoded index length.
func ReadIndex(f io.Reader) (model.ScaleIndex, uint32, error) {
	buf := make([]byte, 4)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, 0, fmt.Errorf("could not read index length: %w", err)
	}
	indexLength := binary.LittleEndian.Uint32(buf)

	buf = make([]byte, indexLength)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, 0, fmt.Errorf("could not read index: %w", err)
	}

	var index model.ScaleIndex
	decoder := gob.NewDecoder(bytes.NewReader(buf))
	if err := decoder.Decode(&index); err != nil {
		return nil, 0, fmt.Errorf("could not decode index: %w", err)
	}
	return index, indexLength, nil
}

// ReadScale random-accesses the records of one scale without decoding
// the rest of the file.
func ReadScale(path string, scale uint8) ([]model.WindowRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	index, _, err := ReadIndex(f)
	if err != nil {
		return nil, err
	}
	pair, ok := index[scale]
	if !ok {
		return nil, fmt.Errorf("analysis has no scale %v", scale)
	}

	// advance from the current position, the start of the data section
	if _, err := f.Seek(int64(pair.Start), io.SeekCurrent); err != nil {
		return nil, err
	}
	buf := make([]byte, pair.End-pair.Start)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, fmt.Errorf("could not read records: %w", err)
	}
	return ParseRecords(buf), nil
}

// ReadAll decodes every record in an analysis file grouped by scale.
func ReadAll(path string) (map[uint8][]model.WindowRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	index, _, err := ReadIndex(f)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	res := make(map[uint8][]model.WindowRecord, len(index))
	for scale, pair := range index {
		res[scale] = ParseRecords(data[pair.Start:pair.End])
	}
	return res, nil
}

func ParseRecords(buf []byte) []model.WindowRecord {
	var res []model.WindowRecord
	for i := 0; i+constants.RecordSize <= len(buf); i += constants.RecordSize {
		var rec model.WindowRecord
		rec.StartMs = binary.LittleEndian.Uint32(buf[i : i+4])
		rec.Set = binary.LittleEndian.Uint16(buf[i+4 : i+6])
		rec.Class = binary.LittleEndian.Uint16(buf[i+6 : i+8])
		res = append(res, rec)
	}
	return res
}
