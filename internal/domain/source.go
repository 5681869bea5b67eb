package domain

// SourceSet - четыре сырых источника одной сборки.
type SourceSet struct {
	// Version - хеш содержимого источников, ключ кеша собранной таблицы.
	Version      string
	Airports     []RawAirport
	CountryCosts []CostOfLivingRecord
	CityCosts    []CostOfLivingRecord
	Temperatures []TemperatureRecord
}
