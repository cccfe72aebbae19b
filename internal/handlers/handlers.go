package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"emocare/api/internal/config"
	"emocare/api/internal/detector"
	"emocare/api/internal/middleware"
	"emocare/api/internal/models"
	"emocare/api/internal/repository"
	"emocare/api/internal/service"
	"emocare/api/internal/storage"
)

type HandlerSet struct {
	log zerolog.Logger
	cfg *config.AppConfig

	authService    *service.AuthService
	userService    *service.UserService
	lockoutService *service.LockoutService
	emotionService *service.EmotionService
	alertService   *service.AlertService
	statsService   *service.StatsService
	recordService  *service.RecordService
	noteService    *service.NoteService
	tagService     *service.TagService

	db    *pgxpool.Pool
	cache *redis.Client
	users *repository.UserRepository
}

func NewHandlerSet(
	log zerolog.Logger,
	db *pgxpool.Pool,
	cache *redis.Client,
	store *storage.ObjectStore,
	detect *detector.Client,
	cfg *config.AppConfig,
) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	emotionRepo := repository.NewEmotionRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	attemptRepo := repository.NewLoginAttemptRepository(db)
	recordRepo := repository.NewEmotionRecordRepository(db)
	noteRepo := repository.NewPatientNoteRepository(db)
	tagRepo := repository.NewPatientTagRepository(db)

	userSvc := service.NewUserService(userRepo, assignmentRepo, log)
	lockoutSvc := service.NewLockoutService(attemptRepo, userRepo, cfg.Security, log)
	authSvc := service.NewAuthService(userRepo, userSvc, lockoutSvc, cfg.Security, log)
	alertSvc := service.NewAlertService(alertRepo, emotionRepo, userRepo, assignmentRepo, cfg.Alerts, log)
	emotionSvc := service.NewEmotionService(emotionRepo, userRepo, alertSvc, detect, store, cache, log)
	statsSvc := service.NewStatsService(emotionRepo, userRepo, cache, cfg.Stats, log)
	recordSvc := service.NewRecordService(recordRepo, userRepo)
	noteSvc := service.NewNoteService(noteRepo, userRepo)
	tagSvc := service.NewTagService(tagRepo, userRepo)

	return HandlerSet{
		log:            log,
		cfg:            cfg,
		authService:    authSvc,
		userService:    userSvc,
		lockoutService: lockoutSvc,
		emotionService: emotionSvc,
		alertService:   alertSvc,
		statsService:   statsSvc,
		recordService:  recordSvc,
		noteService:    noteSvc,
		tagService:     tagSvc,
		db:             db,
		cache:          cache,
		users:          userRepo,
	}
}

func (h HandlerSet) Routes(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)

		protected := v1.Group("/auth")
		protected.Use(middleware.Auth(h.cfg, h.users))
		protected.GET("/validate", h.Validate)
	}

	users := v1.Group("/users")
	users.Use(middleware.Auth(h.cfg, h.users))
	{
		users.GET("/me", h.Me)
		users.PUT("/me", h.UpdateProfile)
		users.PUT("/me/password", h.ChangePassword)
		users.GET("/:id", h.GetUser)

		doctorOnly := middleware.RequireRoles(models.RoleDoctor)
		users.GET("", doctorOnly, h.ListUsers)
		users.GET("/email/:email", doctorOnly, h.GetUserByEmail)
		users.GET("/patients", doctorOnly, h.ListPatients)
		users.GET("/patients/assigned", doctorOnly, h.AssignedPatients)
		users.POST("/patients/:patientId/assign", doctorOnly, h.AssignPatient)
		users.DELETE("/patients/:patientId/assign", doctorOnly, h.UnassignPatient)
		users.PUT("/patients/:patientId", doctorOnly, h.UpdatePatientInfo)
	}

	emotions := v1.Group("/emotions")
	emotions.Use(middleware.Auth(h.cfg, h.users))
	{
		patientOnly := middleware.RequireRoles(models.RolePatient)
		emotions.POST("", patientOnly, h.CreateEmotion)
		emotions.POST("/detect", patientOnly, h.DetectEmotion)
		emotions.GET("/:id", h.GetEmotion)
		emotions.GET("/patient/:patientId", h.PatientEmotionHistory)
		emotions.GET("/patient/:patientId/statistics", h.PatientStatistics)
	}

	records := v1.Group("/emotion-records")
	records.Use(middleware.Auth(h.cfg, h.users))
	{
		records.POST("", h.CreateRecord)
		records.GET("", h.ListRecords)
		records.GET("/:id", h.GetRecord)
		records.PUT("/:id", h.UpdateRecord)
		records.DELETE("/:id", h.DeleteRecord)
	}

	alerts := v1.Group("/alerts")
	alerts.Use(middleware.Auth(h.cfg, h.users))
	{
		doctorOnly := middleware.RequireRoles(models.RoleDoctor)
		alerts.GET("", doctorOnly, h.DoctorAlerts)
		alerts.GET("/unread", doctorOnly, h.UnreadAlerts)
		alerts.GET("/patient/:patientId", h.PatientAlerts)
		alerts.PUT("/:id/read", doctorOnly, h.MarkAlertRead)
	}

	notes := v1.Group("/patient-notes")
	notes.Use(middleware.Auth(h.cfg, h.users))
	{
		doctorOnly := middleware.RequireRoles(models.RoleDoctor)
		notes.POST("", doctorOnly, h.CreateNote)
		notes.GET("/mine", doctorOnly, h.NotesByDoctor)
		notes.GET("/patient/:patientId", h.NotesByPatient)
		notes.PUT("/:id", doctorOnly, h.UpdateNote)
		notes.DELETE("/:id", doctorOnly, h.DeleteNote)
	}

	tags := v1.Group("/patient-tags")
	tags.Use(middleware.Auth(h.cfg, h.users))
	{
		doctorOnly := middleware.RequireRoles(models.RoleDoctor)
		tags.POST("", doctorOnly, h.CreateTag)
		tags.GET("/patient/:patientId", h.TagsByPatient)
		tags.GET("/patient/:patientId/mine", doctorOnly, h.TagsByPatientAndDoctor)
		tags.DELETE("/patient/:patientId/:tag", doctorOnly, h.DeleteTagByName)
		tags.DELETE("/:id", doctorOnly, h.DeleteTag)
	}
}

func currentUser(c *gin.Context) models.User {
	userVal, _ := c.Get("current_user")
	user, _ := userVal.(models.User)
	return user
}
