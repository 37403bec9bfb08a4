package repository

import (
	"context"
	"time"

	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var sortByCreatedAt = options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

// now truncates to the millisecond precision BSON dates carry.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func byID(id string) bson.M {
	return bson.M{"_id": id}
}

// MongoUserRepository is a MongoDB implementation of UserRepository
type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &MongoUserRepository{coll: db.Collection(constants.CollectionUsers)}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = models.NewID()
	}
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt
	_, err := r.coll.InsertOne(ctx, user)
	return translateError(err)
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, byID(id)).Decode(&user); err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *MongoUserRepository) ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"role": role}, sortByCreatedAt)
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// MongoProjectRepository is a MongoDB implementation of ProjectRepository
type MongoProjectRepository struct {
	projects *mongo.Collection
	tasks    *mongo.Collection
}

func NewMongoProjectRepository(db *mongo.Database) ProjectRepository {
	return &MongoProjectRepository{
		projects: db.Collection(constants.CollectionProjects),
		tasks:    db.Collection(constants.CollectionTasks),
	}
}

func (r *MongoProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if project.ID == "" {
		project.ID = models.NewID()
	}
	project.CreatedAt = now()
	project.UpdatedAt = project.CreatedAt
	_, err := r.projects.InsertOne(ctx, project)
	return translateError(err)
}

func (r *MongoProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := r.projects.FindOne(ctx, byID(id)).Decode(&project); err != nil {
		return nil, translateError(err)
	}
	return &project, nil
}

func (r *MongoProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	cursor, err := r.projects.Find(ctx, bson.M{}, sortByCreatedAt)
	if err != nil {
		return nil, err
	}
	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *MongoProjectRepository) Update(ctx context.Context, project *models.Project) error {
	project.UpdatedAt = now()
	result, err := r.projects.ReplaceOne(ctx, byID(project.ID), project)
	if err != nil {
		return translateError(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the project first so a missing ID leaves tasks untouched.
func (r *MongoProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.projects.DeleteOne(ctx, byID(id))
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	_, err = r.tasks.DeleteMany(ctx, bson.M{"projectId": id})
	return err
}

// MongoTaskRepository is a MongoDB implementation of TaskRepository
type MongoTaskRepository struct {
	coll *mongo.Collection
}

func NewMongoTaskRepository(db *mongo.Database) TaskRepository {
	return &MongoTaskRepository{coll: db.Collection(constants.CollectionTasks)}
}

func (r *MongoTaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = models.NewID()
	}
	task.CreatedAt = now()
	task.UpdatedAt = task.CreatedAt
	_, err := r.coll.InsertOne(ctx, task)
	return translateError(err)
}

func (r *MongoTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := r.coll.FindOne(ctx, byID(id)).Decode(&task); err != nil {
		return nil, translateError(err)
	}
	return &task, nil
}

func (r *MongoTaskRepository) List(ctx context.Context) ([]models.Task, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoTaskRepository) ListByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	return r.find(ctx, bson.M{"projectId": projectID})
}

func (r *MongoTaskRepository) find(ctx context.Context, filter bson.M) ([]models.Task, error) {
	cursor, err := r.coll.Find(ctx, filter, sortByCreatedAt)
	if err != nil {
		return nil, err
	}
	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *MongoTaskRepository) Update(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = now()
	result, err := r.coll.ReplaceOne(ctx, byID(task.ID), task)
	if err != nil {
		return translateError(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoTaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
