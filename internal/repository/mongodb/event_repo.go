package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"invento/internal/domain"
)

type eventRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewEventRepository(db *mongo.Database) domain.EventRepository {
	return &eventRepository{coll: db.Collection(EventsCollection), now: time.Now}
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *eventRepository) GetByNumericID(ctx context.Context, numericID int) (*domain.Event, error) {
	return r.findOne(ctx, bson.D{{Key: "numericId", Value: numericID}})
}

func (r *eventRepository) findOne(ctx context.Context, filter bson.D) (*domain.Event, error) {
	e := &domain.Event{}
	if err := r.coll.FindOne(ctx, filter).Decode(e); err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

// List returns every event without its registrations.
func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "numericId", Value: 1}}).
		SetProjection(bson.D{{Key: "registrations", Value: 0}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	var events []*domain.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) Seed(ctx context.Context, e *domain.Event) error {
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "numericId", Value: e.NumericID},
			{Key: "name", Value: e.Name},
			{Key: "club", Value: e.Club},
			{Key: "eventType", Value: e.EventType},
			{Key: "price", Value: e.Price},
			{Key: "isGenderSpecific", Value: e.IsGenderSpecific},
			{Key: "isPricePerPerson", Value: e.IsPricePerPerson},
			{Key: "registration.officialTeamsPerCollege", Value: e.Registration.OfficialTeamsPerCollege},
			{Key: "updatedAt", Value: e.UpdatedAt},
		}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "slots", Value: e.Slots},
			{Key: "registration.isOpen", Value: e.Registration.IsOpen},
			{Key: "registrations", Value: e.Registrations},
			{Key: "createdAt", Value: e.CreatedAt},
		}},
	}
	_, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: e.ID}}, update, options.UpdateOne().SetUpsert(true))
	return err
}

func (r *eventRepository) AppendParticipant(ctx context.Context, eventID string, counter domain.SlotCounter, p *domain.Participant) (bool, error) {
	filter := bson.D{
		{Key: "_id", Value: eventID},
		{Key: "eventType", Value: domain.EventTypeSolo},
		{Key: counter.AvailablePath(), Value: bson.D{{Key: "$gt", Value: 0}}},
		{Key: "registrations.participants.inventoId", Value: bson.D{{Key: "$ne", Value: p.InventoID}}},
	}
	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: counter.AvailablePath(), Value: -1}}},
		{Key: "$push", Value: bson.D{{Key: "registrations.participants", Value: p}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: r.now()}}},
	}
	return r.updateOne(ctx, filter, update)
}

func (r *eventRepository) AppendTeam(ctx context.Context, eventID string, counter domain.SlotCounter, t *domain.Team) (bool, error) {
	filter := bson.D{
		{Key: "_id", Value: eventID},
		{Key: "eventType", Value: domain.EventTypeTeam},
		{Key: counter.AvailablePath(), Value: bson.D{{Key: "$gt", Value: 0}}},
		{Key: "registrations.teams.members.inventoId", Value: bson.D{{Key: "$nin", Value: t.MemberIDs()}}},
	}
	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: counter.AvailablePath(), Value: -1}}},
		{Key: "$push", Value: bson.D{{Key: "registrations.teams", Value: t}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: r.now()}}},
	}
	return r.updateOne(ctx, filter, update)
}

func (r *eventRepository) SetParticipantStatus(ctx context.Context, eventID, inventoID string, status domain.RegistrationStatus, counter domain.SlotCounter, delta int) (bool, error) {
	filter := bson.D{
		{Key: "_id", Value: eventID},
		{Key: "registrations.participants.inventoId", Value: inventoID},
	}
	filter = append(filter, counterGuard(counter, delta)...)
	set := bson.D{
		{Key: "registrations.participants.$[p].status", Value: status},
		{Key: "updatedAt", Value: r.now()},
	}
	opts := options.UpdateOne().SetArrayFilters([]any{bson.D{{Key: "p.inventoId", Value: inventoID}}})
	return r.updateOne(ctx, filter, counterUpdate(set, counter, delta), opts)
}

func (r *eventRepository) SetTeamStatus(ctx context.Context, eventID, leaderID string, status domain.RegistrationStatus, counter domain.SlotCounter, delta int) (bool, error) {
	filter := bson.D{
		{Key: "_id", Value: eventID},
		{Key: "registrations.teams.leaderId", Value: leaderID},
	}
	filter = append(filter, counterGuard(counter, delta)...)
	set := bson.D{
		{Key: "registrations.teams.$[t].status", Value: status},
		{Key: "updatedAt", Value: r.now()},
	}
	opts := options.UpdateOne().SetArrayFilters([]any{bson.D{{Key: "t.leaderId", Value: leaderID}}})
	return r.updateOne(ctx, filter, counterUpdate(set, counter, delta), opts)
}

func (r *eventRepository) SetParticipantPresence(ctx context.Context, eventID, inventoID string, present bool) (bool, error) {
	filter := bson.D{
		{Key: "_id", Value: eventID},
		{Key: "registrations.participants.inventoId", Value: inventoID},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "registrations.participants.$[p].isPresent", Value: present},
		{Key: "updatedAt", Value: r.now()},
	}}}
	opts := options.UpdateOne().SetArrayFilters([]any{bson.D{{Key: "p.inventoId", Value: inventoID}}})
	return r.updateOne(ctx, filter, update, opts)
}

func (r *eventRepository) SetTeamMemberPresence(ctx context.Context, eventID, leaderID, inventoID string, present bool) (bool, error) {
	filter := bson.D{
		{Key: "_id", Value: eventID},
		{Key: "registrations.teams", Value: bson.D{{Key: "$elemMatch", Value: bson.D{
			{Key: "leaderId", Value: leaderID},
			{Key: "members.inventoId", Value: inventoID},
		}}}},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "registrations.teams.$[t].members.$[m].isPresent", Value: present},
		{Key: "updatedAt", Value: r.now()},
	}}}
	opts := options.UpdateOne().SetArrayFilters([]any{
		bson.D{{Key: "t.leaderId", Value: leaderID}},
		bson.D{{Key: "m.inventoId", Value: inventoID}},
	})
	return r.updateOne(ctx, filter, update, opts)
}

func (r *eventRepository) SetRegistrationOpen(ctx context.Context, eventID string, open bool) (bool, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "registration.isOpen", Value: open},
		{Key: "updatedAt", Value: r.now()},
	}}}
	return r.updateOne(ctx, bson.D{{Key: "_id", Value: eventID}}, update)
}

func (r *eventRepository) updateOne(ctx context.Context, filter, update bson.D, opts ...options.Lister[options.UpdateOneOptions]) (bool, error) {
	res, err := r.coll.UpdateOne(ctx, filter, update, opts...)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

// counterGuard keeps a counter inside [0, total] across a move of delta.
func counterGuard(counter domain.SlotCounter, delta int) bson.D {
	switch {
	case delta < 0:
		return bson.D{{Key: counter.AvailablePath(), Value: bson.D{{Key: "$gt", Value: 0}}}}
	case delta > 0:
		return bson.D{{Key: "$expr", Value: bson.D{{Key: "$lt", Value: bson.A{
			"$" + counter.AvailablePath(),
			"$" + counter.TotalPath(),
		}}}}}
	}
	return nil
}

func counterUpdate(set bson.D, counter domain.SlotCounter, delta int) bson.D {
	update := bson.D{{Key: "$set", Value: set}}
	if delta != 0 {
		update = append(update, bson.E{Key: "$inc", Value: bson.D{{Key: counter.AvailablePath(), Value: delta}}})
	}
	return update
}
