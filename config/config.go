package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	Clinic ClinicConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// ClinicConfig holds the business calendar: operating window, lunch break,
// operating days, slot/bucket granularity and booking lead-time bounds.
type ClinicConfig struct {
	OpenTime        string // HH:MM
	CloseTime       string // HH:MM
	LunchStartTime  string // HH:MM
	LunchEndTime    string // HH:MM
	OperatingDays   []time.Weekday
	SlotInterval    time.Duration
	CapacityUnit    time.Duration
	DefaultCapacity int
	MinLeadTime     time.Duration
	MaxAdvanceDays  int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	setDefaults()

	// .env is optional in containerized deployments; env vars win either way
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Clinic: ClinicConfig{
			OpenTime:        viper.GetString("CLINIC_OPEN_TIME"),
			CloseTime:       viper.GetString("CLINIC_CLOSE_TIME"),
			LunchStartTime:  viper.GetString("CLINIC_LUNCH_START"),
			LunchEndTime:    viper.GetString("CLINIC_LUNCH_END"),
			OperatingDays:   parseOperatingDays(viper.GetIntSlice("CLINIC_OPERATING_DAYS")),
			SlotInterval:    time.Duration(viper.GetInt("CLINIC_SLOT_INTERVAL_MINUTES")) * time.Minute,
			CapacityUnit:    time.Duration(viper.GetInt("CLINIC_CAPACITY_UNIT_MINUTES")) * time.Minute,
			DefaultCapacity: viper.GetInt("CLINIC_DEFAULT_CAPACITY"),
			MinLeadTime:     time.Duration(viper.GetInt("CLINIC_MIN_LEAD_HOURS")) * time.Hour,
			MaxAdvanceDays:  viper.GetInt("CLINIC_MAX_ADVANCE_DAYS"),
		},
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")

	viper.SetDefault("CLINIC_OPEN_TIME", "09:00")
	viper.SetDefault("CLINIC_CLOSE_TIME", "18:00")
	viper.SetDefault("CLINIC_LUNCH_START", "12:00")
	viper.SetDefault("CLINIC_LUNCH_END", "13:00")
	// 1=Monday ... 5=Friday (time.Weekday numbering)
	viper.SetDefault("CLINIC_OPERATING_DAYS", []int{1, 2, 3, 4, 5})
	viper.SetDefault("CLINIC_SLOT_INTERVAL_MINUTES", 15)
	viper.SetDefault("CLINIC_CAPACITY_UNIT_MINUTES", 30)
	viper.SetDefault("CLINIC_DEFAULT_CAPACITY", 3)
	viper.SetDefault("CLINIC_MIN_LEAD_HOURS", 2)
	viper.SetDefault("CLINIC_MAX_ADVANCE_DAYS", 30)
}

func parseOperatingDays(days []int) []time.Weekday {
	weekdays := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		weekdays = append(weekdays, time.Weekday(d%7))
	}
	return weekdays
}
