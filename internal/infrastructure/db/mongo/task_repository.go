package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tasko-app/tasko-api/internal/core/domain"
	"github.com/tasko-app/tasko-api/internal/core/ports"
)

const collectionTasks = "tasks"

// TaskRepository implements ports.TaskRepository using MongoDB.
type TaskRepository struct {
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(collectionTasks)}
}

type mongoTask struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Title     string             `bson:"title"`
	Desc      string             `bson:"desc"`
	Date      *time.Time         `bson:"date,omitempty"`
	Priority  string             `bson:"priority"`
	Done      bool               `bson:"done"`
	Important bool               `bson:"important"`
	Project   string             `bson:"project,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (mt mongoTask) toDomain() *domain.Task {
	return &domain.Task{
		ID:        mt.ID.Hex(),
		UserID:    mt.UserID,
		Title:     mt.Title,
		Desc:      mt.Desc,
		Date:      mt.Date,
		Priority:  domain.TaskPriority(mt.Priority),
		Done:      mt.Done,
		Important: mt.Important,
		Project:   domain.TaskProject(mt.Project),
		CreatedAt: mt.CreatedAt,
		UpdatedAt: mt.UpdatedAt,
	}
}

func fromDomainTask(t *domain.Task) mongoTask {
	return mongoTask{
		UserID:    t.UserID,
		Title:     t.Title,
		Desc:      t.Desc,
		Date:      t.Date,
		Priority:  string(t.Priority),
		Done:      t.Done,
		Important: t.Important,
		Project:   string(t.Project),
		CreatedAt: t.CreatedAt.UTC(),
		UpdatedAt: t.UpdatedAt.UTC(),
	}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, fromDomainTask(t))
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	created := *t
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, id string) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	var mt mongoTask
	if err := r.col.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *TaskRepository) List(ctx context.Context, f ports.ListTasksFilter) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": f.UserID}
	if f.Project != "" {
		filter["project"] = f.Project
	}
	if f.Priority != "" {
		filter["priority"] = f.Priority
	}
	if f.Done != nil {
		filter["done"] = *f.Done
	}
	if f.Important != nil {
		filter["important"] = *f.Important
	}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"desc": pattern},
		}
	}

	opts := options.Find().SetSort(sortSpec(f.OrderBy))
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cur.Close(ctx)

	var tasks []*domain.Task
	for cur.Next(ctx) {
		var mt mongoTask
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		tasks = append(tasks, mt.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(t.ID)
	if err != nil {
		return domain.ErrTaskNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": t.UserID},
		bson.M{"$set": bson.M{
			"title":      t.Title,
			"desc":       t.Desc,
			"date":       t.Date,
			"priority":   string(t.Priority),
			"done":       t.Done,
			"important":  t.Important,
			"project":    string(t.Project),
			"updated_at": t.UpdatedAt.UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTaskNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) SetDoneByIDs(ctx context.Context, userID string, ids []string, done bool) (int64, error) {
	return r.updateByIDs(ctx, userID, ids, bson.M{"done": done})
}

func (r *TaskRepository) SetImportantByIDs(ctx context.Context, userID string, ids []string, important bool) (int64, error) {
	return r.updateByIDs(ctx, userID, ids, bson.M{"important": important})
}

func (r *TaskRepository) DeleteByIDs(ctx context.Context, userID string, ids []string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": toObjectIDs(ids)}, "user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("bulk delete tasks: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *TaskRepository) DeleteCompleted(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID, "done": true})
	if err != nil {
		return 0, fmt.Errorf("delete completed tasks: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *TaskRepository) DeleteAll(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("delete all tasks: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *TaskRepository) MarkAllDone(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx,
		bson.M{"user_id": userID, "done": false},
		bson.M{"$set": bson.M{"done": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("mark all tasks done: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *TaskRepository) updateByIDs(ctx context.Context, userID string, ids []string, set bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": toObjectIDs(ids)}, "user_id": userID},
		bson.M{"$set": set},
	)
	if err != nil {
		return 0, fmt.Errorf("bulk update tasks: %w", err)
	}
	return res.ModifiedCount, nil
}

// EnsureIndexes creates the per-user lookup index on tasks.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

// toObjectIDs converts hex IDs, silently skipping malformed ones so a bad
// ID in a bulk request cannot fail the whole operation.
func toObjectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

// sortSpec maps an order key to a Mongo sort document; default newest first.
func sortSpec(orderBy string) bson.D {
	switch orderBy {
	case "date":
		return bson.D{{Key: "date", Value: 1}}
	case "priority":
		return bson.D{{Key: "priority", Value: 1}}
	case "title":
		return bson.D{{Key: "title", Value: 1}}
	case "created_at":
		return bson.D{{Key: "created_at", Value: 1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}}
	}
}
