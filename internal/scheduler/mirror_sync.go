package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/manipulados-eda/infrastructure/integrator/anvisa"
	"github.com/vfg2006/manipulados-eda/internal/config"
	"github.com/vfg2006/manipulados-eda/pkg/log"
)

// MirrorSyncConfig representa a configuração do espelhamento da base mensal
type MirrorSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
	DataDir      string
}

// MirrorSyncService mantém a pasta de dados local com todos os meses publicados
type MirrorSyncService struct {
	scheduler           *gocron.Scheduler
	config              MirrorSyncConfig
	integrator          anvisa.AnvisaIntegrator
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastReport          *anvisa.DownloadReport
	lastError           error
}

// NewMirrorSyncService cria o serviço de espelhamento
func NewMirrorSyncService(integrator anvisa.AnvisaIntegrator, appConfig *config.Config) *MirrorSyncService {
	mirrorConfig := MirrorSyncConfig{
		CronSchedule: appConfig.MirrorSync.CronSchedule,
		SyncEnabled:  appConfig.MirrorSync.Enabled,
		DataDir:      appConfig.Dataset.Dir,
	}

	scheduler := gocron.NewScheduler(time.Local)
	scheduler.SingletonModeAll()

	log.L.WithFields(log.Fields{
		"cron_schedule": mirrorConfig.CronSchedule,
		"sync_enabled":  mirrorConfig.SyncEnabled,
		"data_dir":      mirrorConfig.DataDir,
	}).Debug("Configuração do espelhamento da base carregada")

	return &MirrorSyncService{
		scheduler:  scheduler,
		config:     mirrorConfig,
		integrator: integrator,
	}
}

// Start agenda o espelhamento; não faz nada quando desabilitado
func (s *MirrorSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		log.L.Info("Espelhamento da base desabilitado por configuração")
		return nil
	}

	log.L.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de espelhamento da base")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.Sync(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar espelhamento da base: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("Parando agendador de espelhamento da base")
		s.scheduler.Stop()
	}()

	return nil
}

// Sync baixa, em sequência, os meses da cobertura que faltam na pasta local.
// Uma execução em andamento faz as demais chamadas retornarem sem efeito.
func (s *MirrorSyncService) Sync(ctx context.Context) (*anvisa.DownloadReport, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.Info("Espelhamento da base já em andamento, ignorando")
		return nil, nil
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	logger := log.ForContext(ctx)
	logger.WithField("data_dir", s.config.DataDir).Info("Iniciando espelhamento da base")

	report, err := s.integrator.DownloadMissing(ctx, s.config.DataDir)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastReport = report
	s.lastError = err
	if err == nil {
		s.lastSyncCompletedAt = time.Now()
	}
	s.syncMutex.Unlock()

	if err != nil {
		logger.WithError(err).Error("Erro no espelhamento da base")
		return report, err
	}

	logger.WithFields(log.Fields{
		"duration":   time.Since(startTime).String(),
		"downloaded": len(report.Downloaded),
		"failed":     len(report.Failed),
	}).Info("Espelhamento da base concluído")

	return report, nil
}

// TriggerManualSync inicia um espelhamento fora do agendamento
func (s *MirrorSyncService) TriggerManualSync(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.Info("Espelhamento da base já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	log.L.Info("Iniciando espelhamento manual da base")
	go s.Sync(ctx)
}

// GetStatus retorna o status atual do espelhamento
func (s *MirrorSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"data_dir":               s.config.DataDir,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
	if s.lastReport != nil {
		status["last_downloaded"] = len(s.lastReport.Downloaded)
		status["last_failed"] = len(s.lastReport.Failed)
	}
	if s.lastError != nil {
		status["last_error"] = s.lastError.Error()
	}
	return status
}
