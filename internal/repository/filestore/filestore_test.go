package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const employeeFixture = `Employee #;Last Name;First Name;Birthday;Address;Phone Number;SSS #;Philhealth #;TIN #;Pag-ibig #;Status;Position;Immediate Supervisor;Basic Salary;Rice Subsidy;Phone Allowance;Clothing Allowance;Gross Semi-monthly Rate;Hourly Rate
10001;Garcia;Manuel III;10/11/1983;"Valero Carpark Building, Makati City";966-860-270;44-4506057-3;820126853951;442-605-657-000;691295330870;Regular;Chief Executive Officer;N/A;"90,000";1500;2000;1000;"45,000";535.71

10002;Lim;Antonio;06/19/1988;San Antonio De Padua 2, Cavite;171-867-411;52-2061274-9;331735646338;683-102-776-000;663904995411;Probationary;Chief Operating Officer;Garcia, Manuel III;60000;1500;"2,000";1000;30000;357.14
10003;Aquino;Bianca;08/04/1989;Makati City;966-889-370;30-8870406-2;177451189665;971-711-280-000;171519773969;Regular;CFO;Garcia, Manuel III;abc;1500;2000;1000;30000;357.14
10004;Short;Row
`

const attendanceFixture = `Employee #,Date,Log In,Log Out
10001,06/03/2024,8:59,18:31
10001,06/04/2024,"08:20","17:10"
10001,06/05/2024,garbage,17:00
10001,not-a-date,08:00,17:00
10002,06/03/2024,10:37,18:31
10001,07/01/2024,8:00,17:00
10001,05/31/2023,8:00,17:00
`

func writeFixtures(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	employeePath, attendancePath := Paths(dir)
	require.NoError(t, os.WriteFile(employeePath, []byte(employeeFixture), 0o600))
	require.NoError(t, os.WriteFile(attendancePath, []byte(attendanceFixture), 0o600))
	return employeePath, attendancePath
}

func TestEmployeeRepository_GetCompensation(t *testing.T) {
	employeePath, _ := writeFixtures(t)
	repo := NewEmployeeRepository(employeePath)
	ctx := context.Background()

	c, err := repo.GetCompensation(ctx, "10001")
	require.NoError(t, err)
	assert.Equal(t, "Manuel III Garcia", c.FullName())
	assert.Equal(t, "Chief Executive Officer", c.Position)
	assert.Equal(t, employee.EmploymentTypeRegular, c.EmploymentType)
	assert.True(t, decimal.RequireFromString("90000").Equal(c.BasicSalary))
	assert.True(t, decimal.RequireFromString("535.71").Equal(c.HourlyRate))
	assert.True(t, decimal.RequireFromString("4500").Equal(c.TotalBenefits()))

	c, err = repo.GetCompensation(ctx, "10002")
	require.NoError(t, err)
	assert.Equal(t, employee.EmploymentTypeProbationary, c.EmploymentType)
	assert.True(t, decimal.RequireFromString("2000").Equal(c.PhoneAllowance))

	_, err = repo.GetCompensation(ctx, "10003")
	assert.ErrorIs(t, err, employee.ErrMalformedCompensation)

	c, err = repo.GetCompensation(ctx, "10004")
	require.NoError(t, err)
	assert.True(t, c.BasicSalary.IsZero())

	_, err = repo.GetCompensation(ctx, "99999")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_ListIDs(t *testing.T) {
	employeePath, _ := writeFixtures(t)

	ids, err := NewEmployeeRepository(employeePath).ListIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"10001", "10002", "10003", "10004"}, ids)
}

func TestEmployeeRepository_MissingFile(t *testing.T) {
	_, err := NewEmployeeRepository(filepath.Join(t.TempDir(), EmployeeFile)).ListIDs(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAttendanceRepository_ListByEmployeeAndPeriod(t *testing.T) {
	_, attendancePath := writeFixtures(t)
	repo := NewAttendanceRepository(attendancePath)
	ctx := context.Background()

	records, err := repo.ListByEmployeeAndPeriod(ctx, "10001", attendance.MonthPeriod(2024, time.June))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC), records[0].Date)
	assert.Equal(t, attendance.TimePunch{Login: "8:59", Logout: "18:31"}, records[0].Punch)
	assert.Equal(t, attendance.TimePunch{Login: "08:20", Logout: "17:10"}, records[1].Punch)
	assert.Equal(t, "garbage", records[2].Punch.Login)

	_, err = repo.ListByEmployeeAndPeriod(ctx, "10001", attendance.MonthPeriod(2024, time.August))
	assert.ErrorIs(t, err, attendance.ErrNoAttendance)

	_, err = repo.ListByEmployeeAndPeriod(ctx, "10009", attendance.MonthPeriod(2024, time.June))
	assert.ErrorIs(t, err, attendance.ErrNoAttendance)
}

func TestAttendanceRepository_ListMonths(t *testing.T) {
	_, attendancePath := writeFixtures(t)

	months, err := NewAttendanceRepository(attendancePath).ListMonths(context.Background(), "10001")
	require.NoError(t, err)
	assert.Equal(t, []attendance.Month{
		{Year: 2023, Month: time.May},
		{Year: 2024, Month: time.June},
		{Year: 2024, Month: time.July},
	}, months)

	months, err = NewAttendanceRepository(attendancePath).ListMonths(context.Background(), "10009")
	require.NoError(t, err)
	assert.Empty(t, months)
}

func TestAttendanceRepository_CanceledContext(t *testing.T) {
	_, attendancePath := writeFixtures(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAttendanceRepository(attendancePath).ListMonths(ctx, "10001")
	assert.ErrorIs(t, err, context.Canceled)
}
