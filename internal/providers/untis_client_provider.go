package providers

import (
	"untisd/internal/structures"
	"untisd/internal/untis"
)

func NewUntisClient(conf *structures.Config) (untis.ClientInterface, error) {
	loc, err := conf.Location()
	if err != nil {
		return nil, err
	}

	client := untis.NewClient(
		conf.Untis.Server,
		conf.Untis.School,
		conf.Untis.Username,
		conf.Untis.Password,
		untis.SourceType(conf.Untis.TimetableSource),
		conf.Untis.SourceName,
		conf.Untis.ExtendedTimetable,
		loc,
	)
	return client, nil
}
