package salonservice

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaySchedule_UnmarshalJSON_FieldVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
		open  string
		close string
	}{
		{"open/close", `{"isOpen": true, "open": "09:00", "close": "18:00"}`, "09:00", "18:00"},
		{"openTime/closeTime", `{"isOpen": true, "openTime": "10:00", "closeTime": "19:00"}`, "10:00", "19:00"},
		{"startTime/endTime", `{"isOpen": true, "startTime": "08:30", "endTime": "17:30"}`, "08:30", "17:30"},
		{"mixed variants", `{"isOpen": true, "openTime": "09:00", "endTime": "18:00"}`, "09:00", "18:00"},
		{"no isOpen field", `{"open": "09:00", "close": "18:00"}`, "09:00", "18:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var day DaySchedule
			require.NoError(t, json.Unmarshal([]byte(tt.input), &day))

			assert.True(t, day.IsOpen)
			require.NotNil(t, day.OpenTime)
			require.NotNil(t, day.CloseTime)
			assert.Equal(t, tt.open, day.OpenTime.String())
			assert.Equal(t, tt.close, day.CloseTime.String())
		})
	}
}

func TestDaySchedule_UnmarshalJSON_VariantPriority(t *testing.T) {
	// При нескольких вариантах побеждает канонический `open`
	input := `{"isOpen": true, "open": "09:00", "openTime": "10:00", "close": "18:00"}`

	var day DaySchedule
	require.NoError(t, json.Unmarshal([]byte(input), &day))
	assert.Equal(t, "09:00", day.OpenTime.String())
}

func TestDaySchedule_UnmarshalJSON_ClosedDay(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"explicit isOpen=false", `{"isOpen": false, "open": "09:00", "close": "18:00"}`},
		{"no times", `{"isOpen": true}`},
		{"only open time", `{"isOpen": true, "open": "09:00"}`},
		{"empty strings", `{"isOpen": true, "open": "", "close": ""}`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var day DaySchedule
			require.NoError(t, json.Unmarshal([]byte(tt.input), &day))

			assert.False(t, day.IsOpen)
			assert.Nil(t, day.OpenTime)
			assert.Nil(t, day.CloseTime)
		})
	}
}

func TestDaySchedule_UnmarshalJSON_InvalidTimeIgnored(t *testing.T) {
	// Непарсящееся значение пропускается в пользу следующего варианта
	input := `{"isOpen": true, "open": "9am", "openTime": "09:00", "close": "18:00"}`

	var day DaySchedule
	require.NoError(t, json.Unmarshal([]byte(input), &day))
	assert.True(t, day.IsOpen)
	assert.Equal(t, "09:00", day.OpenTime.String())

	// Все варианты некорректны - день закрыт, ошибки нет
	input = `{"isOpen": true, "open": "9am", "close": "6pm"}`
	require.NoError(t, json.Unmarshal([]byte(input), &day))
	assert.False(t, day.IsOpen)
}

func TestWeekSchedule_Unmarshal(t *testing.T) {
	input := `{
		"monday": {"isOpen": true, "open": "09:00", "close": "18:00"},
		"saturday": {"isOpen": true, "startTime": "10:00", "endTime": "16:00"},
		"sunday": {"isOpen": false}
	}`

	var week WeekSchedule
	require.NoError(t, json.Unmarshal([]byte(input), &week))

	assert.True(t, week.Monday.IsOpen)
	assert.Equal(t, "09:00", week.Monday.OpenTime.String())
	assert.True(t, week.Saturday.IsOpen)
	assert.Equal(t, "16:00", week.Saturday.CloseTime.String())
	assert.False(t, week.Sunday.IsOpen)
	// Дни, отсутствующие в ответе, закрыты
	assert.False(t, week.Tuesday.IsOpen)
}

func TestSalon_HasManager(t *testing.T) {
	salon := &Salon{ManagerIDs: []int64{10, 20}}
	assert.True(t, salon.HasManager(10))
	assert.False(t, salon.HasManager(30))

	empty := &Salon{}
	assert.False(t, empty.HasManager(10))
}
