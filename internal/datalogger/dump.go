package datalogger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tmalesinski/dl2xx/internal/logging"
	"github.com/tmalesinski/dl2xx/internal/protocol"
)

// Dump streams every stored sample to fn, oldest first, paging through the
// device store without buffering it whole. It returns the number of entries
// emitted; on error the count covers the entries delivered before the failure.
//
// The device declares its sample count in the settings record; the dump stops
// at that count, or earlier if the device answers with an empty page.
// Timestamps must be non-decreasing across the whole stream; a step backwards
// means the paging cursor desynchronized and the dump aborts.
//
// If fn returns an error the dump aborts and the device cursor is left in an
// unknown state; the caller should issue another command (Status is enough)
// before dumping again.
func (d *Device) Dump(fn func(RecordEntry) error) (int, error) {
	const op = "dump"

	cfg, err := d.readConfig("dump: read sample count")
	if err != nil {
		return 0, err
	}
	total := int(cfg.RecordCount)
	logging.Info("dump started", zap.Int("stored_samples", total))

	emitted := 0
	var last protocol.DateTime
	for emitted < total {
		fields, err := d.commandAck(op, protocol.CmdReadRecords,
			protocol.EncodeRecordIndex(uint16(emitted)))
		if err != nil {
			return emitted, err
		}
		page, err := protocol.DecodeRecordPage(fields)
		if err != nil {
			return emitted, tagOp(err, op)
		}
		if len(page) == 0 {
			// End-of-data before the declared count. The device count is
			// authoritative only at read time; trust the stream.
			logging.Warn("dump ended early",
				zap.Int("emitted", emitted), zap.Int("declared", total))
			break
		}

		for _, rec := range page {
			if emitted > 0 && rec.Time.Before(last) {
				return emitted, tagOp(protocol.NewMalformedResponseError(fmt.Sprintf(
					"sample timestamp %s earlier than previous %s, paging cursor desynchronized",
					rec.Time, last), nil), op)
			}
			last = rec.Time

			entry := RecordEntry{
				Time:        rec.Time,
				Temperature: rec.Temperature,
				Humidity:    rec.Humidity,
			}
			if err := fn(entry); err != nil {
				return emitted, err
			}
			emitted++
			if emitted == total {
				break
			}
		}
	}

	logging.Info("dump finished", zap.Int("emitted", emitted))
	return emitted, nil
}

// DumpAll collects every stored sample into memory. Convenience wrapper over
// Dump for callers that need the whole log at once.
func (d *Device) DumpAll() ([]RecordEntry, error) {
	var entries []RecordEntry
	_, err := d.Dump(func(e RecordEntry) error {
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
