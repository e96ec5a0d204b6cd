package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"moul.io/zapgorm2"

	"github.com/bigredeye/roster/internal/models"
)

var ErrNotFound = errors.New("record not found")

type DataBase struct {
	*gorm.DB
}

// https://github.com/go-gorm/gorm/issues/4037
func isForeignKeyViolation(err error) bool {
	var perr *pgconn.PgError
	if errors.As(err, &perr) {
		return perr.Code == "23503"
	}
	return false
}

func MakeDSN(host string, port uint16, user, pass, name string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", host, port, user, pass, name)
}

func OpenDataBase(logger *zap.Logger, dsn string) (*DataBase, error) {
	zapLogger := zapgorm2.New(logger.Named("gorm"))
	zapLogger.SetAsDefault()
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: zapLogger,
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&models.Student{}, &models.Attendance{})
	if err != nil {
		return nil, err
	}

	return &DataBase{db}, nil
}

func (db *DataBase) ListStudents(ctx context.Context) (students []models.Student, err error) {
	students = make([]models.Student, 0)
	err = db.WithContext(ctx).Order("id").Find(&students).Error
	if err != nil {
		students = nil
	}
	return
}

func (db *DataBase) FindStudent(ctx context.Context, id int) (*models.Student, error) {
	var student models.Student
	err := db.WithContext(ctx).First(&student, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (db *DataBase) AddStudent(ctx context.Context, student *models.Student) error {
	return db.WithContext(ctx).Create(student).Error
}

// UpdateStudent overwrites every field of the student and keeps the
// denormalized name on its attendance records in sync.
func (db *DataBase) UpdateStudent(ctx context.Context, student *models.Student) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Student{ID: student.ID}).
			Select("name", "age", "grade", "school", "living_area", "phone").
			Updates(student)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected < 1 {
			return ErrNotFound
		}

		return tx.Model(&models.Attendance{}).
			Where("student_id = ?", student.ID).
			Update("student_name", student.Name).
			Error
	})
}

func (db *DataBase) DeleteStudent(ctx context.Context, id int) (*models.Student, error) {
	var student models.Student
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&student, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}
		return tx.Delete(&student).Error
	})
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (db *DataBase) ListAttendance(ctx context.Context) (records []models.Attendance, err error) {
	records = make([]models.Attendance, 0)
	err = db.WithContext(ctx).Order("date, id").Find(&records).Error
	if err != nil {
		records = nil
	}
	return
}

func (db *DataBase) ListStudentAttendance(ctx context.Context, studentID int) (records []models.Attendance, err error) {
	records = make([]models.Attendance, 0)
	err = db.WithContext(ctx).Order("date, id").Find(&records, "student_id = ?", studentID).Error
	if err != nil {
		records = nil
	}
	return
}

// AddAttendance stores the record under the current name of its student.
func (db *DataBase) AddAttendance(ctx context.Context, record *models.Attendance) error {
	student, err := db.FindStudent(ctx, record.StudentID)
	if err != nil {
		return err
	}
	record.StudentName = student.Name

	err = db.WithContext(ctx).Create(record).Error
	if isForeignKeyViolation(err) {
		// The student was deleted between the lookup and the insert.
		return ErrNotFound
	}
	return err
}
