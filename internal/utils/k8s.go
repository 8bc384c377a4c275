package utils

import (
	"log"
	"os"
	"path/filepath"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// K8sClient builds a Kubernetes client for the cluster the current
// kubeconfig context points at.
func K8sClient() *kubernetes.Clientset {
	config, err := clientcmd.BuildConfigFromFlags("", GetKubeConfigPath())
	if err != nil {
		log.Fatalf("unable to build kube config: %v", err)
	}
	k8sClient, err := kubernetes.NewForConfig(config)
	if err != nil {
		log.Fatalf("unable to create kube client: %v", err)
	}
	return k8sClient
}

func GetKubeConfigPath() string {
	// if KUBECONFIG is set, use it
	if kubeConfigEnvPath := os.Getenv("KUBECONFIG"); kubeConfigEnvPath != "" {
		return kubeConfigEnvPath
	}

	// Otherwise, use $HOME/.kube/config if it exists
	if kubeConfigFilePath := filepath.Join(homedir.HomeDir(), ".kube/config"); FileExists(kubeConfigFilePath) {
		return kubeConfigFilePath
	}

	// An empty path makes clientcmd.BuildConfigFromFlags fall back to
	// in-cluster authentication
	// c.f. https://pkg.go.dev/k8s.io/client-go/tools/clientcmd#BuildConfigFromFlags
	return ""
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
