package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/competition-registry/models"
	"github.com/Dosada05/competition-registry/repositories"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// CompetitionRoster — стартовый протокол соревнования целиком.
type CompetitionRoster struct {
	Competition models.Competition  `json:"competition"`
	Races       []models.RaceRoster `json:"races"`
}

type RosterService interface {
	// GetCompetitionRoster собирает протокол по всем гонкам соревнования.
	GetCompetitionRoster(ctx context.Context, competitionID uuid.UUID) (*CompetitionRoster, error)
}

type rosterService struct {
	competitionRepo repositories.CompetitionRepository
	raceRepo        repositories.RaceRepository
	specialRepo     repositories.SpecialCategoryRepository
	participantRepo repositories.ParticipantRepository
	linkRepo        repositories.SpecialCategoryLinkRepository
}

func NewRosterService(
	competitionRepo repositories.CompetitionRepository,
	raceRepo repositories.RaceRepository,
	specialRepo repositories.SpecialCategoryRepository,
	participantRepo repositories.ParticipantRepository,
	linkRepo repositories.SpecialCategoryLinkRepository,
) RosterService {
	return &rosterService{
		competitionRepo: competitionRepo,
		raceRepo:        raceRepo,
		specialRepo:     specialRepo,
		participantRepo: participantRepo,
		linkRepo:        linkRepo,
	}
}

func (s *rosterService) GetCompetitionRoster(ctx context.Context, competitionID uuid.UUID) (*CompetitionRoster, error) {
	var (
		competition *models.Competition
		races       []models.Race
		specials    []models.SpecialCategory
		entries     []models.RosterParticipant
		links       []models.SpecialCategoryLink
	)

	// Независимые выборки; сортировка — забота SQL-запросов.
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		competition, err = s.competitionRepo.GetByID(gCtx, competitionID)
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return ErrCompetitionNotFound
		}
		return err
	})
	g.Go(func() error {
		var err error
		races, err = s.raceRepo.ListOrderedByMinAge(gCtx, competitionID)
		return err
	})
	g.Go(func() error {
		var err error
		specials, err = s.specialRepo.ListByCompetition(gCtx, competitionID)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.participantRepo.ListRosterEntries(gCtx, competitionID)
		return err
	})
	g.Go(func() error {
		var err error
		links, err = s.linkRepo.ListByCompetition(gCtx, competitionID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load roster data: %w", err)
	}

	specialsByRace := groupSpecialsByRace(races, specials)
	linksByParticipant := groupLinksByParticipant(entries, links)

	return &CompetitionRoster{
		Competition: *competition,
		Races:       BuildRoster(races, specialsByRace, entries, linksByParticipant),
	}, nil
}

// groupSpecialsByRace раскладывает особые зачёты по гонкам, сохраняя
// позиционное соответствие с races.
func groupSpecialsByRace(races []models.Race, specials []models.SpecialCategory) [][]models.SpecialCategory {
	byRace := make(map[uuid.UUID][]models.SpecialCategory, len(races))
	for _, sc := range specials {
		byRace[sc.RaceID] = append(byRace[sc.RaceID], sc)
	}
	grouped := make([][]models.SpecialCategory, len(races))
	for i, race := range races {
		grouped[i] = byRace[race.ID]
	}
	return grouped
}

// groupLinksByParticipant раскладывает связи по участникам, сохраняя
// позиционное соответствие с entries.
func groupLinksByParticipant(entries []models.RosterParticipant, links []models.SpecialCategoryLink) [][]uuid.UUID {
	byParticipant := make(map[uuid.UUID][]uuid.UUID, len(entries))
	for _, link := range links {
		byParticipant[link.ParticipantID] = append(byParticipant[link.ParticipantID], link.SpecialCategoryID)
	}
	grouped := make([][]uuid.UUID, len(entries))
	for i, entry := range entries {
		grouped[i] = byParticipant[entry.ID]
	}
	return grouped
}

// BuildRoster собирает протокол одним проходом слиянием двух
// отсортированных последовательностей.
//
// Контракт вызывающего: participants отсортированы тем же эффективным
// ключом гонки, что и races, и идут подряд внутри своей гонки;
// specialsByRace и linksByParticipant позиционно выровнены с races и
// participants соответственно. Группировка идёт по id гонки, который
// каждая строка участника несёт с собой, поэтому совпадение имён гонок
// безопасно. Нарушение порядка не детектируется и приводит к тихо
// неверной группировке — это свойство проверяется тестами, а не рантаймом.
//
// На каждую гонку возвращается запись протокола, даже если участников нет.
// Вектор флагов участника позиционно совпадает со списком особых зачётов
// его гонки.
func BuildRoster(
	races []models.Race,
	specialsByRace [][]models.SpecialCategory,
	participants []models.RosterParticipant,
	linksByParticipant [][]uuid.UUID,
) []models.RaceRoster {
	rosters := make([]models.RaceRoster, 0, len(races))

	next := 0
	for i, race := range races {
		specials := make([]models.SpecialCategory, 0)
		if i < len(specialsByRace) && specialsByRace[i] != nil {
			specials = specialsByRace[i]
		}

		entries := make([]models.RosterEntry, 0)
		for next < len(participants) && participants[next].RaceID == race.ID {
			var linked []uuid.UUID
			if next < len(linksByParticipant) {
				linked = linksByParticipant[next]
			}

			flags := make([]bool, len(specials))
			for k, sc := range specials {
				for _, id := range linked {
					if id == sc.ID {
						flags[k] = true
						break
					}
				}
			}

			entries = append(entries, models.RosterEntry{
				RosterParticipant:    participants[next],
				SpecialCategoryFlags: flags,
			})
			next++
		}

		rosters = append(rosters, models.RaceRoster{
			RaceName:          race.Name,
			SpecialCategories: specials,
			Participants:      entries,
		})
	}
	return rosters
}
